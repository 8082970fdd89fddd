package roster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/csuniv/election-system/internal/core/domain"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store, path
}

func TestFileStore_AddRemove(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Add("Senior", "  Carol "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add("Senior", "Carol"); !errors.Is(err, domain.ErrCandidateExists) {
		t.Fatalf("expected ErrCandidateExists, got %v", err)
	}
	if err := store.Add("Senior", "  "); !errors.Is(err, domain.ErrEmptyCandidateName) {
		t.Fatalf("expected ErrEmptyCandidateName, got %v", err)
	}

	names, err := store.Candidates("Senior")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(names) != 1 || names[0] != "Carol" {
		t.Fatalf("roster should contain Carol exactly once, got %v", names)
	}

	if err := store.Remove("Senior", "Ghost"); !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if err := store.Remove("Senior", "Carol"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	names, _ = store.Candidates("Senior")
	if len(names) != 0 {
		t.Fatalf("expected empty roster, got %v", names)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	if err := store.Add("Junior", "Dana"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	names, err := reopened.Candidates("Junior")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(names) != 1 || names[0] != "Dana" {
		t.Fatalf("roster not persisted, got %v", names)
	}
}

func TestFileStore_UnknownClassYearIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	names, err := store.Candidates("Sophomore")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}
}

func TestFileStore_ConcurrentAdds(t *testing.T) {
	store, _ := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Add("Senior", fmt.Sprintf("Candidate %02d", i)); err != nil {
				t.Errorf("Add %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	names, err := store.Candidates("Senior")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(names) != n {
		t.Fatalf("lost update: expected %d candidates, got %d", n, len(names))
	}
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if _, err := NewFileStore(path); err == nil {
		t.Fatalf("expected error for corrupt roster file")
	}
}

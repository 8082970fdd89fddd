// Package roster persists the class-year → candidate-list mapping as a JSON
// document, rewritten wholesale on every mutation.
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/csuniv/election-system/internal/core/domain"
)

// FileStore is a file-backed implementation of ports.RosterStore. Mutations
// run under a mutex and are written through a temp file + rename so a crash
// mid-write never leaves a truncated roster and concurrent admin edits are
// not lost.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore opens the roster file at path, creating an empty roster when
// the file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Candidates(classYear string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), roster[classYear]...), nil
}

func (s *FileStore) All() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Add(classYear, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrEmptyCandidateName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	roster, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range roster[classYear] {
		if existing == name {
			return domain.ErrCandidateExists
		}
	}
	roster[classYear] = append(roster[classYear], name)
	return s.write(roster)
}

func (s *FileStore) Remove(classYear, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster, err := s.load()
	if err != nil {
		return err
	}
	names := roster[classYear]
	for i, existing := range names {
		if existing == name {
			roster[classYear] = append(names[:i], names[i+1:]...)
			return s.write(roster)
		}
	}
	return domain.ErrCandidateNotFound
}

func (s *FileStore) load() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string][]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	roster := make(map[string][]string)
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return roster, nil
}

// write rewrites the whole document atomically: marshal to a temp file in
// the same directory, then rename over the original.
func (s *FileStore) write(roster map[string][]string) error {
	data, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".roster-*")
	if err != nil {
		return fmt.Errorf("create temp roster: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write roster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp roster: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace roster: %w", err)
	}
	return nil
}

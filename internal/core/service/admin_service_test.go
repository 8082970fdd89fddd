package service

import (
	"context"
	"errors"
	"testing"

	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
)

func newAdminFixture() (*AdminService, *stubVoterRepo, *stubBallotRepo, *stubRoster) {
	voters := newStubVoterRepo()
	ballots := newStubBallotRepo(voters)
	roster := newStubRoster()
	svc := NewAdminService(voters, ballots, roster, testDomain, discardLogger)
	return svc, voters, ballots, roster
}

func TestAdminService_AddCandidate(t *testing.T) {
	svc, _, _, roster := newAdminFixture()
	ctx := context.Background()

	if err := svc.AddCandidate(ctx, "Senior", "Carol"); err != nil {
		t.Fatalf("AddCandidate: %v", err)
	}
	// A second add of the same name is rejected and leaves one entry.
	if err := svc.AddCandidate(ctx, "Senior", "Carol"); !errors.Is(err, domain.ErrCandidateExists) {
		t.Fatalf("expected ErrCandidateExists, got %v", err)
	}

	names, _ := roster.Candidates("Senior")
	count := 0
	for _, n := range names {
		if n == "Carol" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("roster should contain Carol exactly once, got %d", count)
	}
}

func TestAdminService_AddCandidate_EmptyName(t *testing.T) {
	svc, _, _, _ := newAdminFixture()
	if err := svc.AddCandidate(context.Background(), "Senior", "   "); !errors.Is(err, domain.ErrEmptyCandidateName) {
		t.Fatalf("expected ErrEmptyCandidateName, got %v", err)
	}
}

func TestAdminService_RemoveCandidate_NotFound(t *testing.T) {
	svc, _, _, _ := newAdminFixture()
	if err := svc.RemoveCandidate(context.Background(), "Senior", "Ghost"); !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestAdminService_ManualBallot(t *testing.T) {
	svc, voters, ballots, _ := newAdminFixture()
	ctx := context.Background()

	in := ports.ManualBallotInput{
		Email:      "B@Student.CSUniv.Edu",
		ClassYear:  "Junior",
		Selections: []string{"Alice"},
	}
	if err := svc.ManualBallot(ctx, in); err != nil {
		t.Fatalf("ManualBallot: %v", err)
	}

	voter, ok := voters.byMail["b@student.csuniv.edu"]
	if !ok {
		t.Fatalf("manual ballot should create the voter under the normalized email")
	}
	if !voter.HasVoted {
		t.Fatalf("has-voted flag not set")
	}
	if got := len(ballots.entries["b@student.csuniv.edu"]); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}

	// Exactly-once voting holds for manual entry too.
	if err := svc.ManualBallot(ctx, in); !errors.Is(err, domain.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestAdminService_ManualBallot_Validation(t *testing.T) {
	svc, _, ballots, _ := newAdminFixture()
	ctx := context.Background()

	if err := svc.ManualBallot(ctx, ports.ManualBallotInput{Email: "x@gmail.com", ClassYear: "Senior", Selections: []string{"A"}}); !errors.Is(err, domain.ErrInvalidEmailDomain) {
		t.Fatalf("expected ErrInvalidEmailDomain, got %v", err)
	}

	selections := make([]string, 11)
	for i := range selections {
		selections[i] = "c"
	}
	if err := svc.ManualBallot(ctx, ports.ManualBallotInput{Email: "c@student.csuniv.edu", ClassYear: "Senior", Selections: selections}); !errors.Is(err, domain.ErrTooManySelections) {
		t.Fatalf("expected ErrTooManySelections, got %v", err)
	}

	if err := svc.ManualBallot(ctx, ports.ManualBallotInput{Email: "c@student.csuniv.edu", ClassYear: "Senior"}); !errors.Is(err, domain.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	if len(ballots.entries) != 0 {
		t.Fatalf("rejected manual ballots must create zero entries")
	}
}

func TestAdminService_TallyOrdering(t *testing.T) {
	svc, voters, ballots, _ := newAdminFixture()
	ctx := context.Background()

	// Alice: 3 votes, Bob: 5 votes across eight voters.
	for i := 0; i < 8; i++ {
		email := string(rune('a'+i)) + "@student.csuniv.edu"
		if _, err := voters.Create(ctx, &domain.Voter{Email: email, ClassYear: "Senior"}); err != nil {
			t.Fatalf("create voter: %v", err)
		}
		candidate := "Bob"
		if i < 3 {
			candidate = "Alice"
		}
		if err := ballots.CastBallot(ctx, email, []string{candidate}); err != nil {
			t.Fatalf("cast: %v", err)
		}
	}

	tally, err := svc.Tally(ctx)
	if err != nil {
		t.Fatalf("Tally: %v", err)
	}
	want := []domain.TallyEntry{{Candidate: "Bob", Votes: 5}, {Candidate: "Alice", Votes: 3}}
	if len(tally) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(tally))
	}
	for i := range want {
		if tally[i] != want[i] {
			t.Fatalf("row %d: got %+v, want %+v", i, tally[i], want[i])
		}
	}
}

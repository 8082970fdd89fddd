package ports

import (
	"context"

	"github.com/csuniv/election-system/internal/core/domain"
)

// ManualBallotInput identifies the voter by email and class year instead of
// session state. Used by administrators entering paper ballots.
type ManualBallotInput struct {
	Email      string
	ClassYear  string
	Selections []string
}

// AdminService covers roster management, manual ballot entry, and tallying.
type AdminService interface {
	AddCandidate(ctx context.Context, classYear, name string) error
	RemoveCandidate(ctx context.Context, classYear, name string) error
	Roster(ctx context.Context) (map[string][]string, error)
	// ManualBallot casts a ballot on behalf of a voter, enforcing the same
	// selection cap and exactly-once invariant as the voter flow.
	ManualBallot(ctx context.Context, in ManualBallotInput) error
	// Tally aggregates all ballot entries, ordered by votes descending.
	Tally(ctx context.Context) ([]domain.TallyEntry, error)
}

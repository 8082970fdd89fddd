package ports

import (
	"context"

	"github.com/csuniv/election-system/internal/core/domain"
)

// BallotRepository handles ballot persistence and the atomic has-voted flip.
type BallotRepository interface {
	// CastBallot persists one ballot entry per candidate and flips the
	// voter's has-voted flag in a single transaction. The flip is a
	// compare-and-set on has_voted=false, so of two concurrent callers at
	// most one commits; the loser observes domain.ErrAlreadyVoted. Returns
	// domain.ErrVoterNotFound when no voter exists for the email.
	CastBallot(ctx context.Context, email string, candidates []string) error

	// TallyByCandidate groups all ballot entries by candidate name and
	// returns counts ordered by votes descending, candidate name ascending.
	TallyByCandidate(ctx context.Context) ([]domain.TallyEntry, error)
}

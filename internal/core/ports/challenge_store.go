package ports

import (
	"context"

	"github.com/csuniv/election-system/internal/core/domain"
)

// ChallengeStore holds ephemeral verification challenges keyed by session id.
type ChallengeStore interface {
	// Put stores or overwrites the challenge for its session id.
	Put(ctx context.Context, c *domain.Challenge) error
	// Get retrieves the challenge for a session id.
	// Returns domain.ErrNoSession when absent or expired.
	Get(ctx context.Context, sessionID string) (*domain.Challenge, error)
	// Delete discards the challenge so the session cannot be replayed.
	Delete(ctx context.Context, sessionID string) error
}

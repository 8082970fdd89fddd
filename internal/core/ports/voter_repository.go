package ports

import (
	"context"

	"github.com/csuniv/election-system/internal/core/domain"
)

// VoterRepository defines persistence operations for voters.
type VoterRepository interface {
	// FindByEmail retrieves a voter by normalized email.
	// Returns domain.ErrVoterNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.Voter, error)
	// Create inserts a new voter. When another request created the same
	// email concurrently, the existing record is returned instead.
	Create(ctx context.Context, v *domain.Voter) (*domain.Voter, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/csuniv/election-system/internal/core/domain"
)

// VoterRepository is the SQLite-backed implementation of ports.VoterRepository.
type VoterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) *VoterRepository {
	return &VoterRepository{db: db}
}

func (r *VoterRepository) FindByEmail(ctx context.Context, email string) (*domain.Voter, error) {
	var v domain.Voter
	var hasVoted int
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, class_year, has_voted, created_at FROM voters WHERE email = ?",
		email,
	).Scan(&v.ID, &v.Email, &v.ClassYear, &hasVoted, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVoterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find voter: %w", err)
	}
	v.HasVoted = hasVoted != 0
	return &v, nil
}

// Create inserts the voter, or returns the existing record when a concurrent
// request won the race on the unique email.
func (r *VoterRepository) Create(ctx context.Context, v *domain.Voter) (*domain.Voter, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO voters (email, class_year, has_voted, created_at) VALUES (?, ?, 0, ?) ON CONFLICT(email) DO NOTHING",
		v.Email, v.ClassYear, v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create voter: %w", err)
	}
	return r.FindByEmail(ctx, v.Email)
}

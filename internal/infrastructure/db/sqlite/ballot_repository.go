package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/csuniv/election-system/internal/core/domain"
)

// BallotRepository is the SQLite-backed implementation of ports.BallotRepository.
type BallotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) *BallotRepository {
	return &BallotRepository{db: db}
}

// CastBallot flips the voter's has_voted flag and inserts the entry batch in
// one transaction. The flip is guarded by "AND has_voted = 0": when two
// requests race past the earlier checks, only one UPDATE reports an affected
// row; the other rolls back with domain.ErrAlreadyVoted and writes nothing.
func (r *BallotRepository) CastBallot(ctx context.Context, email string, candidates []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cast: %w", err)
	}
	defer tx.Rollback()

	var voterID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM voters WHERE email = ?", email).Scan(&voterID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVoterNotFound
	}
	if err != nil {
		return fmt.Errorf("find voter: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE voters SET has_voted = 1 WHERE id = ? AND has_voted = 0",
		voterID,
	)
	if err != nil {
		return fmt.Errorf("flip has_voted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("flip has_voted: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyVoted
	}

	for _, candidate := range candidates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ballot_entries (voter_id, candidate) VALUES (?, ?)",
			voterID, candidate,
		); err != nil {
			return fmt.Errorf("insert ballot entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cast: %w", err)
	}
	return nil
}

// TallyByCandidate counts entries per candidate, most votes first. Ties are
// broken by candidate name so the output order is stable.
func (r *BallotRepository) TallyByCandidate(ctx context.Context) ([]domain.TallyEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT candidate, COUNT(*) AS votes
		FROM ballot_entries
		GROUP BY candidate
		ORDER BY votes DESC, candidate ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("tally: %w", err)
	}
	defer rows.Close()

	var tally []domain.TallyEntry
	for rows.Next() {
		var e domain.TallyEntry
		if err := rows.Scan(&e.Candidate, &e.Votes); err != nil {
			return nil, fmt.Errorf("scan tally row: %w", err)
		}
		tally = append(tally, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tally: %w", err)
	}
	return tally, nil
}

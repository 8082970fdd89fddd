package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
)

// AdminService implements roster management, manual ballot entry, and tallying.
type AdminService struct {
	voters        ports.VoterRepository
	ballots       ports.BallotRepository
	roster        ports.RosterStore
	allowedDomain string
	logger        zerolog.Logger
}

func NewAdminService(
	voters ports.VoterRepository,
	ballots ports.BallotRepository,
	roster ports.RosterStore,
	allowedDomain string,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		voters:        voters,
		ballots:       ballots,
		roster:        roster,
		allowedDomain: strings.ToLower(allowedDomain),
		logger:        logger,
	}
}

func (s *AdminService) AddCandidate(ctx context.Context, classYear, name string) error {
	if err := s.roster.Add(classYear, name); err != nil {
		return err
	}
	s.logger.Info().Str("class_year", classYear).Str("candidate", name).Msg("candidate added")
	return nil
}

func (s *AdminService) RemoveCandidate(ctx context.Context, classYear, name string) error {
	if err := s.roster.Remove(classYear, name); err != nil {
		return err
	}
	s.logger.Info().Str("class_year", classYear).Str("candidate", name).Msg("candidate removed")
	return nil
}

func (s *AdminService) Roster(ctx context.Context) (map[string][]string, error) {
	return s.roster.All()
}

// ManualBallot casts a ballot on behalf of a voter identified by email and
// class year. The selection cap and the exactly-once invariant hold exactly
// as in the voter flow; the voting window does not apply, since manual entry
// exists to record paper ballots after the fact.
func (s *AdminService) ManualBallot(ctx context.Context, in ports.ManualBallotInput) error {
	email := domain.NormalizeEmail(in.Email)
	if !domain.ValidEmailDomain(email, s.allowedDomain) {
		return domain.ErrInvalidEmailDomain
	}
	if err := domain.ValidateSelections(in.Selections); err != nil {
		return err
	}

	_, err := s.voters.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrVoterNotFound):
		if _, err := s.voters.Create(ctx, &domain.Voter{Email: email, ClassYear: in.ClassYear}); err != nil {
			return fmt.Errorf("create voter: %w", err)
		}
	case err != nil:
		return fmt.Errorf("find voter: %w", err)
	}

	if err := s.ballots.CastBallot(ctx, email, in.Selections); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Int("entries", len(in.Selections)).Msg("manual ballot recorded")
	return nil
}

func (s *AdminService) Tally(ctx context.Context) ([]domain.TallyEntry, error) {
	return s.ballots.TallyByCandidate(ctx)
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
)

// codeSpace bounds the one-time code: uniform over [0, 1e6), printed with a
// fixed width of six digits.
var codeSpace = big.NewInt(1_000_000)

// VotingService implements the verification → code-challenge →
// ballot-casting sequence.
type VotingService struct {
	voters        ports.VoterRepository
	ballots       ports.BallotRepository
	challenges    ports.ChallengeStore
	roster        ports.RosterStore
	notifier      ports.Notifier
	allowedDomain string
	window        domain.VotingWindow
	now           func() time.Time
	logger        zerolog.Logger
}

func NewVotingService(
	voters ports.VoterRepository,
	ballots ports.BallotRepository,
	challenges ports.ChallengeStore,
	roster ports.RosterStore,
	notifier ports.Notifier,
	allowedDomain string,
	window domain.VotingWindow,
	logger zerolog.Logger,
) *VotingService {
	return &VotingService{
		voters:        voters,
		ballots:       ballots,
		challenges:    challenges,
		roster:        roster,
		notifier:      notifier,
		allowedDomain: strings.ToLower(allowedDomain),
		window:        window,
		now:           time.Now,
		logger:        logger,
	}
}

// StartSession records the chosen class year under a fresh challenge.
// Re-submitting a class year restarts the session from scratch.
func (s *VotingService) StartSession(ctx context.Context, sessionID, classYear string) error {
	challenge := &domain.Challenge{
		SessionID: sessionID,
		Stage:     domain.StageStarted,
		ClassYear: classYear,
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// VerifyIdentity validates the submitted email, looks up or creates the
// voter, and issues a one-time code. A voter who already cast a ballot is
// refused before any code is generated, so retrying for a spent email never
// sends mail.
func (s *VotingService) VerifyIdentity(ctx context.Context, in ports.VerifyIdentityInput) error {
	challenge, err := s.challenges.Get(ctx, in.SessionID)
	if err != nil {
		return err
	}
	if !challenge.Stage.CanTransitionTo(domain.StageIssued) {
		return domain.ErrNoSession
	}

	email := domain.NormalizeEmail(in.Email)
	if !domain.ValidEmailDomain(email, s.allowedDomain) {
		return domain.ErrInvalidEmailDomain
	}

	voter, err := s.voters.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrVoterNotFound):
		voter, err = s.voters.Create(ctx, &domain.Voter{
			Email:     email,
			ClassYear: challenge.ClassYear,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create voter: %w", err)
		}
	case err != nil:
		return fmt.Errorf("find voter: %w", err)
	}
	// A returning email keeps its first-seen class year; the session's
	// selection is not written back.

	if voter.HasVoted {
		return domain.ErrAlreadyVoted
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	challenge.Email = email
	challenge.Code = code
	if err := challenge.Advance(domain.StageIssued); err != nil {
		return err
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}

	if err := s.notifier.Send(ctx, email, code); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("code delivery failed")
		return domain.ErrDeliveryFailed
	}

	s.logger.Info().Str("email", email).Str("class_year", challenge.ClassYear).Msg("verification code issued")
	return nil
}

// ConfirmCode compares the entered code against the pending challenge.
// Equality is an exact string match; on mismatch the challenge stays valid
// and the voter may retry.
func (s *VotingService) ConfirmCode(ctx context.Context, sessionID, code string) error {
	challenge, err := s.challenges.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if challenge.Stage != domain.StageIssued || challenge.Code == "" {
		return domain.ErrNoSession
	}
	if code != challenge.Code {
		return domain.ErrCodeMismatch
	}

	voter, err := s.voters.FindByEmail(ctx, challenge.Email)
	if err != nil {
		return fmt.Errorf("find voter: %w", err)
	}
	if voter.HasVoted {
		return domain.ErrAlreadyVoted
	}

	if err := challenge.Advance(domain.StageConfirmed); err != nil {
		return err
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

// Ballot returns the candidate list for the session's class year.
func (s *VotingService) Ballot(ctx context.Context, sessionID string) (*ports.BallotView, error) {
	challenge, err := s.challenges.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if challenge.Stage != domain.StageConfirmed {
		return nil, domain.ErrNoSession
	}

	candidates, err := s.roster.Candidates(challenge.ClassYear)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return &ports.BallotView{ClassYear: challenge.ClassYear, Candidates: candidates}, nil
}

// CastBallot validates the selections and persists them atomically with the
// voter's has-voted flip, then discards the challenge so the session cannot
// replay. Validation order: voting window, then size cap, then non-emptiness.
func (s *VotingService) CastBallot(ctx context.Context, in ports.CastBallotInput) error {
	challenge, err := s.challenges.Get(ctx, in.SessionID)
	if err != nil {
		return err
	}
	if challenge.Stage != domain.StageConfirmed {
		return domain.ErrNoSession
	}

	if !s.window.Open(s.now()) {
		return domain.ErrVotingClosed
	}

	selections := append([]string(nil), in.Selections...)
	if writeIn := strings.TrimSpace(in.WriteIn); writeIn != "" {
		selections = append(selections, writeIn)
	}
	if err := domain.ValidateSelections(selections); err != nil {
		return err
	}

	if err := s.ballots.CastBallot(ctx, challenge.Email, selections); err != nil {
		return err
	}

	if err := s.challenges.Delete(ctx, in.SessionID); err != nil {
		// The ballot is committed; a stale challenge cannot recast because
		// the has-voted flag now blocks it. Log and move on.
		s.logger.Warn().Err(err).Str("session_id", in.SessionID).Msg("failed to clear challenge")
	}

	s.logger.Info().Str("email", challenge.Email).Int("entries", len(selections)).Msg("ballot cast")
	return nil
}

// generateCode returns a six-digit numeric code drawn uniformly from
// crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

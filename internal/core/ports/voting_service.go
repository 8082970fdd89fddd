package ports

import "context"

// VerifyIdentityInput carries the voter's submitted address for the
// verification step. The class year was chosen earlier in the session.
type VerifyIdentityInput struct {
	SessionID string
	Email     string
}

// CastBallotInput carries the checkbox selections plus the optional write-in.
type CastBallotInput struct {
	SessionID  string
	Selections []string
	WriteIn    string
}

// BallotView is what the voter sees before casting: the candidate list for
// the session's class year.
type BallotView struct {
	ClassYear  string
	Candidates []string
}

// VotingService orchestrates the verification → code-challenge →
// ballot-casting sequence and enforces its invariants.
type VotingService interface {
	// StartSession records the chosen class year for a fresh session.
	StartSession(ctx context.Context, sessionID, classYear string) error
	// VerifyIdentity validates the email, looks up or creates the voter,
	// and issues a one-time code unless the voter already cast a ballot.
	VerifyIdentity(ctx context.Context, in VerifyIdentityInput) error
	// ConfirmCode compares the entered code with the pending challenge.
	ConfirmCode(ctx context.Context, sessionID, code string) error
	// Ballot returns the candidate list for the confirmed session.
	Ballot(ctx context.Context, sessionID string) (*BallotView, error)
	// CastBallot persists the selections and flips has-voted atomically,
	// then clears the session's transient state.
	CastBallot(ctx context.Context, in CastBallotInput) error
}

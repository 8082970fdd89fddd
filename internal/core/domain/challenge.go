package domain

import "errors"

// ChallengeStage represents the lifecycle state of a verification session.
type ChallengeStage string

const (
	// StageStarted: the voter picked a class year but has not verified an email.
	StageStarted ChallengeStage = "started"
	// StageIssued: a one-time code has been generated and sent.
	StageIssued ChallengeStage = "issued"
	// StageConfirmed: the entered code matched; the ballot may be cast.
	StageConfirmed ChallengeStage = "confirmed"
)

// validTransitions defines the allowed state machine transitions.
// issued→issued covers a retry after a failed or lost delivery.
var validTransitions = map[ChallengeStage][]ChallengeStage{
	StageStarted:   {StageIssued},
	StageIssued:    {StageIssued, StageConfirmed},
	StageConfirmed: {},
}

var ErrNoSession = errors.New("no active verification session")
var ErrCodeMismatch = errors.New("code mismatch")
var ErrDeliveryFailed = errors.New("code delivery failed")
var ErrInvalidStage = errors.New("invalid verification stage")

// CanTransitionTo reports whether a transition from the current stage to next is valid.
func (s ChallengeStage) CanTransitionTo(next ChallengeStage) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Challenge is the ephemeral per-session verification state. It exists from
// the class-year selection until the ballot is cast, then is discarded so a
// fresh attempt cannot replay it. The code is bound to the email it was
// issued for; re-verifying with a different email issues a new code.
type Challenge struct {
	SessionID string         `json:"session_id"`
	Stage     ChallengeStage `json:"stage"`
	ClassYear string         `json:"class_year"`
	Email     string         `json:"email,omitempty"`
	Code      string         `json:"code,omitempty"`
}

// Advance moves the challenge to the next stage, enforcing the transition table.
func (c *Challenge) Advance(next ChallengeStage) error {
	if !c.Stage.CanTransitionTo(next) {
		return ErrInvalidStage
	}
	c.Stage = next
	return nil
}

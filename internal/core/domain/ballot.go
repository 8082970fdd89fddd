package domain

import (
	"errors"
	"time"
)

// MaxSelections is the ballot-wide cap on candidate selections, write-in included.
const MaxSelections = 10

var ErrTooManySelections = errors.New("too many selections")
var ErrNoSelection = errors.New("no selection")
var ErrVotingClosed = errors.New("voting closed")

// BallotEntry is one persisted (voter, candidate) pair. Entries are written
// in a single batch with the voter's HasVoted flip and are immutable after.
type BallotEntry struct {
	ID        int64  `json:"id"`
	VoterID   int64  `json:"voter_id"`
	Candidate string `json:"candidate"`
}

// TallyEntry is one row of the results aggregation.
type TallyEntry struct {
	Candidate string `json:"candidate"`
	Votes     int64  `json:"votes"`
}

// VotingWindow bounds when ballots may be cast. A zero window means voting
// is always open.
type VotingWindow struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no window is configured.
func (w VotingWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Open reports whether t falls within [Start, End] inclusive.
func (w VotingWindow) Open(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// ValidateSelections enforces the ballot input rules in order: the size cap
// first, then non-emptiness. Submitted names are deliberately not checked
// against the candidate roster; write-ins ride the same path.
func ValidateSelections(selections []string) error {
	if len(selections) > MaxSelections {
		return ErrTooManySelections
	}
	if len(selections) == 0 {
		return ErrNoSelection
	}
	return nil
}

package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidEmailDomain = errors.New("email is not an institutional address")
var ErrVoterNotFound = errors.New("voter not found")
var ErrAlreadyVoted = errors.New("already voted")

// Voter is a student identified by institutional email. The HasVoted flag
// flips false→true exactly once, atomically with the ballot entry batch.
type Voter struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	ClassYear string    `json:"class_year"`
	HasVoted  bool      `json:"has_voted"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// that A@Student.CSUniv.Edu and a@student.csuniv.edu key the same voter.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmailDomain reports whether the normalized address ends with the
// institution's required suffix.
func ValidEmailDomain(email, allowedDomain string) bool {
	return strings.HasSuffix(NormalizeEmail(email), strings.ToLower(allowedDomain))
}

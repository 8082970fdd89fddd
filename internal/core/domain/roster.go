package domain

import "errors"

var ErrEmptyCandidateName = errors.New("candidate name is empty")
var ErrCandidateExists = errors.New("candidate already on roster")
var ErrCandidateNotFound = errors.New("candidate not found")

// RoleAdmin gates the admin panel. Voters are anonymous until verified and
// carry no role.
const RoleAdmin = "admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

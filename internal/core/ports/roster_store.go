package ports

// RosterStore manages the class-year → candidate-list mapping.
// Implementations serialize concurrent mutations so admin edits are not lost.
type RosterStore interface {
	// Candidates returns the ordered candidate list for a class year.
	// An unknown class year yields an empty list.
	Candidates(classYear string) ([]string, error)
	// All returns the full roster keyed by class year.
	All() (map[string][]string, error)
	// Add appends a candidate to a class year's list.
	// Returns domain.ErrEmptyCandidateName or domain.ErrCandidateExists.
	Add(classYear, name string) error
	// Remove deletes a candidate from a class year's list.
	// Returns domain.ErrCandidateNotFound when absent.
	Remove(classYear, name string) error
}

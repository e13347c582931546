package animal

import "fmt"

// Status represents the adoption availability of a listing. Which status a
// listing moves to is the owner's call; the service only validates membership
// and ownership, not a transition table.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
	StatusAdopted     Status = "ADOPTED"
)

// IsValid returns true if the status is a recognized listing status.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusAdopted:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid animal status: %s", s)
	}
	return status, nil
}

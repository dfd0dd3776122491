package core

import "github.com/google/uuid"

// NewID returns a random record identifier.
func NewID() string {
	return uuid.NewString()
}

// ParseID normalizes a client supplied identifier. Anything that is not a
// UUID is rejected with ErrInvalidArgument so callers can tell a malformed
// id apart from a missing record.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", Errorf(ErrInvalidArgument, "Invalid ID format")
	}
	return id.String(), nil
}

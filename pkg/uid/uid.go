package uid

import "github.com/google/uuid"

// New generates a new unique identifier. Every catalog record id
// (items, offers) and generated request id comes from here.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a well-formed identifier from New.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

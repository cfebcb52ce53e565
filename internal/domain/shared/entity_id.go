package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityID is a value object representing the stable identity of a game object
// (planet, city, area, stratum). Identities never change for the lifetime of a session.
type EntityID struct {
	value string
}

// NewEntityID creates a new EntityID with a generated UUID
func NewEntityID() EntityID {
	return EntityID{value: uuid.New().String()}
}

// ParseEntityID creates an EntityID from an existing UUID string
func ParseEntityID(id string) (EntityID, error) {
	if id == "" {
		return EntityID{}, fmt.Errorf("entity_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return EntityID{}, fmt.Errorf("invalid entity_id format: %w", err)
	}

	return EntityID{value: id}, nil
}

// MustParseEntityID creates an EntityID from a string, panicking if invalid
// Use this only when the ID is known to be valid (e.g., from database)
func MustParseEntityID(id string) EntityID {
	eid, err := ParseEntityID(id)
	if err != nil {
		panic(err)
	}
	return eid
}

// Value returns the string value of the EntityID
func (e EntityID) Value() string {
	return e.value
}

// String returns a string representation of the EntityID
func (e EntityID) String() string {
	return e.value
}

// Short returns the first eight characters, for log lines and tables
func (e EntityID) Short() string {
	if len(e.value) <= 8 {
		return e.value
	}
	return e.value[:8]
}

// Equals checks if two EntityIDs are equal
func (e EntityID) Equals(other EntityID) bool {
	return e.value == other.value
}

// IsZero checks if the EntityID is the zero value (uninitialized)
func (e EntityID) IsZero() bool {
	return e.value == ""
}

package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// EntryID is a value object representing a journal entry's unique identifier
type EntryID struct {
	value string
}

// NewEntryID creates a new EntryID with a generated UUID
func NewEntryID() EntryID {
	return EntryID{value: uuid.New().String()}
}

// NewEntryIDFromString creates an EntryID from an existing UUID string
func NewEntryIDFromString(id string) (EntryID, error) {
	if id == "" {
		return EntryID{}, fmt.Errorf("entry_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return EntryID{}, fmt.Errorf("invalid entry_id format: %w", err)
	}

	return EntryID{value: id}, nil
}

// String returns a string representation of the EntryID
func (e EntryID) String() string {
	return e.value
}

// IsZero checks if the EntryID is the zero value (uninitialized)
func (e EntryID) IsZero() bool {
	return e.value == ""
}

package ledger

import "fmt"

// ErrInvalidEntry represents validation errors for journal entries
type ErrInvalidEntry struct {
	Field  string
	Reason string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid ledger entry: %s - %s", e.Field, e.Reason)
}

// ErrEntryNotFound represents errors when a journal entry cannot be found
type ErrEntryNotFound struct {
	ID string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("ledger entry not found: id=%s", e.ID)
}

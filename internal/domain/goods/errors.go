package goods

import "fmt"

// Domain errors for good definitions

// ErrUnknownGood indicates a good identifier is not defined in the catalog
type ErrUnknownGood struct {
	Identifier string
	Suggestion string // closest defined identifier, empty when nothing is close
}

func (e *ErrUnknownGood) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown good: %s (did you mean %s?)", e.Identifier, e.Suggestion)
	}
	return fmt.Sprintf("unknown good: %s", e.Identifier)
}

// ErrDuplicateGood indicates a good with the same identifier or id already exists
type ErrDuplicateGood struct {
	Identifier string
}

func (e *ErrDuplicateGood) Error() string {
	return fmt.Sprintf("good already defined: %s", e.Identifier)
}

// ErrInvalidGood represents validation errors for good definitions
type ErrInvalidGood struct {
	Field  string
	Reason string
}

func (e *ErrInvalidGood) Error() string {
	return fmt.Sprintf("invalid good: %s - %s", e.Field, e.Reason)
}

package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Lookup errors

// NotFoundError is returned when an entity cannot be resolved from its identity
type NotFoundError struct {
	*DomainError
	Kind string
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s not found: %s", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}

// WrongKindError is returned when an entity exists but is not of the requested kind
type WrongKindError struct {
	*DomainError
	ID       string
	Expected string
}

func NewWrongKindError(id, expected string) *WrongKindError {
	return &WrongKindError{
		DomainError: &DomainError{Message: fmt.Sprintf("entity %s is not a %s", id, expected)},
		ID:          id,
		Expected:    expected,
	}
}

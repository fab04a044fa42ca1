package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidApplication marks caller-side input errors. It is distinct from a
// REJECTED decision: a malformed application is a bug in the caller, not a
// business outcome.
var ErrInvalidApplication = errors.New("invalid application")

// ValidationError describes a single malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid application: field %q %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidApplication).
func (e *ValidationError) Unwrap() error { return ErrInvalidApplication }

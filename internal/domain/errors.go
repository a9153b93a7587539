package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by the more specific errors below.
	ErrValidation = errors.New("validation failed")

	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrEmptyName           = errors.New("author name cannot be empty")
	ErrNameTooLong         = errors.New("author name cannot exceed 200 characters")
	ErrEmptyTitle          = errors.New("book title cannot be empty")
	ErrInvalidAuthorID     = errors.New("author ID must be positive")
	ErrInvalidYear         = errors.New("publication year must be between 1000 and 9999")
)

// ValidationError ties a failed domain rule to the field it concerns.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError wraps err for field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

// Unwrap exposes both the specific rule error and ErrValidation.
func (e *ValidationError) Unwrap() []error {
	return []error{e.Err, ErrValidation}
}

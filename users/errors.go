package users

import "errors"

var (
	// ErrDuplicateEmail is returned when another record already uses the email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateMobile is returned when another record already uses the mobile.
	ErrDuplicateMobile = errors.New("mobile already exists")
	// ErrNoFields is returned by partial updates that carry no updatable field.
	ErrNoFields = errors.New("no valid fields to update")
	// ErrCreateFailed is returned when an insert produced no row.
	ErrCreateFailed = errors.New("failed to create user")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "Validation error: " + e.Message
}

func newValidationError(field Field, message string) *ValidationError {
	return &ValidationError{Field: string(field), Message: message}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateMobile)
}

// IsClientError reports whether err was caused by the caller's input rather
// than by a failing dependency.
func IsClientError(err error) bool {
	return IsValidation(err) || errors.Is(err, ErrNoFields)
}

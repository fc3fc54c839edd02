package errors

import (
	"errors"
	"fmt"
)

// Common error types for the travel-site server
var (
	// Validation errors (HTTP 400)
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidEmail = errors.New("invalid email format")

	// Authentication errors (HTTP 401)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUserNotFound       = errors.New("user not found")

	// Rate limiting errors (HTTP 429)
	ErrTooManyAttempts = errors.New("too many login attempts")

	// Configuration errors (fatal at startup, never per-request)
	ErrMissingSigningSecret = errors.New("missing session signing secret")

	// Catalog errors
	ErrRecordNotFound = errors.New("record not found")

	// General errors (HTTP 500)
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

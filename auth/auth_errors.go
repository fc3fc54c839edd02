package auth

import (
	"time"

	errs "github.com/jthorne/go-travel-site/internal/errors"
)

// TooManyAttemptsError is returned when a client key has exhausted its
// login attempts. RetryAfter tells the boundary what to put in the
// Retry-After header.
type TooManyAttemptsError struct {
	RetryAfter time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	return errs.ErrTooManyAttempts.Error()
}

// Is makes errors.Is(err, errs.ErrTooManyAttempts) match.
func (e *TooManyAttemptsError) Is(target error) bool {
	return target == errs.ErrTooManyAttempts
}

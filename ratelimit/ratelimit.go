// Package ratelimit bounds login attempts per client key and provides a
// general per-key request throttle. The login limiter is a fixed-window
// counter: coarse brute-force mitigation, not a cryptographic guarantee.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed bool
	// RetryAfter is the value to return in a Retry-After header when
	// blocking. Zero means no recommendation.
	RetryAfter time.Duration
}

// Store tracks failed-login attempts per client key. It is an explicitly
// owned, injectable dependency of the auth service so a distributed backing
// store can replace the in-process map under horizontal scaling.
type Store interface {
	// CheckAndRecord records an attempt for key and reports whether the
	// attempt may proceed. Once the per-window maximum is reached further
	// attempts are denied until the window elapses.
	CheckAndRecord(ctx context.Context, key string) (Decision, error)

	// Reset clears the entry for key. Called after a successful login.
	Reset(ctx context.Context, key string) error
}

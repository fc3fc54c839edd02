package ratelimit

import (
	"context"
	"sync"
	"time"
)

type attemptEntry struct {
	count       int
	lastAttempt time.Time
}

// MemoryStore is the in-process Store implementation: a mutex-guarded map of
// fixed-window counters with periodic eviction of idle entries.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry

	maxAttempts  int
	window       time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

var _ Store = (*MemoryStore)(nil)

type MemoryOption func(*MemoryStore)

// WithNow overrides the time source (primarily for testing).
func WithNow(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

func NewMemoryStore(maxAttempts int, window time.Duration, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:      make(map[string]*attemptEntry),
		maxAttempts:  maxAttempts,
		window:       window,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) CheckAndRecord(_ context.Context, key string) (Decision, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || now.Sub(ent.lastAttempt) > s.window {
		s.entries[key] = &attemptEntry{count: 1, lastAttempt: now}
		return Decision{Allowed: true}, nil
	}

	if ent.count >= s.maxAttempts {
		// A denied attempt is not counted, so the window still runs out
		// relative to the last counted attempt.
		return Decision{RetryAfter: ent.lastAttempt.Add(s.window).Sub(now)}, nil
	}

	ent.count++
	ent.lastAttempt = now
	return Decision{Allowed: true}, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Cleanup evicts entries whose window has fully elapsed.
func (s *MemoryStore) Cleanup() {
	cutoff := s.now().Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastAttempt.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor starts a goroutine that periodically evicts stale entries.
// Stop it by cancelling the context.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

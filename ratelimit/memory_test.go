package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jthorne/go-travel-site/ratelimit"
)

const (
	testMaxAttempts = 5
	testWindow      = 15 * time.Minute
)

func newTestStore(now *time.Time) *ratelimit.MemoryStore {
	return ratelimit.NewMemoryStore(testMaxAttempts, testWindow,
		ratelimit.WithNow(func() time.Time { return *now }))
}

func TestMemoryStore_AllowsUpToMaxAttempts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, dec.Allowed, "attempt %d should be allowed", i+1)
	}

	dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, dec.Allowed, "attempt %d should be denied", testMaxAttempts+1)
	require.Equal(t, testWindow, dec.RetryAfter)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		_, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	dec, err := store.CheckAndRecord(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, dec.Allowed)
}

func TestMemoryStore_WindowExpiryResetsCount(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		_, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	now = now.Add(testWindow + time.Second)

	dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, dec.Allowed, "window elapsed, count must restart at 1")
}

func TestMemoryStore_ResetClearsEntry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		_, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	require.NoError(t, store.Reset(ctx, "10.0.0.1"))

	// A fresh count starts at 1, so the next max-1 attempts stay allowed.
	for i := 0; i < testMaxAttempts; i++ {
		dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, dec.Allowed, "attempt %d after reset should be allowed", i+1)
	}
}

func TestMemoryStore_DeniedAttemptDoesNotExtendWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		_, err := store.CheckAndRecord(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	// Hammering while locked must not push the unlock time out.
	now = now.Add(10 * time.Minute)
	dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, dec.Allowed)
	require.Equal(t, 5*time.Minute, dec.RetryAfter)

	now = now.Add(5*time.Minute + time.Second)
	dec, err = store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, dec.Allowed)
}

func TestMemoryStore_CleanupEvictsStaleEntries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	_, err := store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)

	now = now.Add(testWindow + time.Minute)
	store.Cleanup()

	// The evicted key behaves like a first attempt again.
	dec, err := store.CheckAndRecord(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, dec.Allowed)
}

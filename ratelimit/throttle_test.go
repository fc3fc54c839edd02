package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jthorne/go-travel-site/ratelimit"
)

func TestThrottle_BurstThenDeny(t *testing.T) {
	th := ratelimit.NewThrottle(1, 2)

	require.True(t, th.Allow("1.2.3.4"))
	require.True(t, th.Allow("1.2.3.4"))
	require.False(t, th.Allow("1.2.3.4"), "burst exhausted")
}

func TestThrottle_PerKeyBuckets(t *testing.T) {
	th := ratelimit.NewThrottle(1, 1)

	require.True(t, th.Allow("1.2.3.4"))
	require.False(t, th.Allow("1.2.3.4"))
	require.True(t, th.Allow("5.6.7.8"), "separate key has its own bucket")
}

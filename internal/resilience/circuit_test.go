package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBreakerOpensOnFailureRatio(t *testing.T) {
	b := NewBreaker(4, 0.5, time.Minute).WithTarget("test")

	b.Report(true)
	b.Report(false)
	b.Report(false)
	require.True(t, b.Allow())

	b.Report(false)
	require.False(t, b.Allow())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker(1, 0.5, 10*time.Millisecond).WithTarget("recovery")

	b.Report(false)
	require.False(t, b.Allow())

	time.Sleep(20 * time.Millisecond)
	require.True(t, b.Allow())

	b.Report(true)
	require.True(t, b.Allow())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(1, 0.5, 10*time.Millisecond).WithTarget("reopen")

	b.Report(false)
	time.Sleep(20 * time.Millisecond)
	require.True(t, b.Allow())

	b.Report(false)
	require.False(t, b.Allow())
}

func TestBackoffGrowsExponentially(t *testing.T) {
	base := 100 * time.Millisecond
	require.Equal(t, base, Backoff(base, 1, 0))
	require.Equal(t, 2*base, Backoff(base, 2, 0))
	require.Equal(t, 4*base, Backoff(base, 3, 0))
}

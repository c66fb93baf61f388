package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/teenjuna/flat/internal/testing/require"
	"github.com/teenjuna/flat/retry"
)

func TestExponentialValidation(t *testing.T) {
	require.PanicWithError(t, "attempts can't be < 0", func() {
		_ = retry.Exponential(-1, time.Second, time.Minute)
	})

	require.PanicWithError(t, "minInterval can't be <= 0", func() {
		_ = retry.Exponential(0, 0, time.Minute)
	})

	require.PanicWithError(t, "minInterval can't be >= maxInterval", func() {
		_ = retry.Exponential(0, time.Minute, time.Minute)
	})

	require.PanicWithError(t, "base can't be <= 1", func() {
		_ = retry.Exponential(0, time.Second, time.Minute).WithBase(1)
	})

	require.PanicWithError(t, "jitter can't be >= 1", func() {
		_ = retry.Exponential(0, time.Second, time.Minute).WithJitter(1)
	})
}

func TestExponentialAttempt(t *testing.T) {
	run(t, "Finite attempts", func(t *testing.T) {
		p := retry.Exponential(5, time.Second, 5*time.Second).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.True(t, p.Attempt(t.Context())) })
		f(time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(2*time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(4*time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(5*time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(0, func() { require.False(t, p.Attempt(t.Context())) })
	})

	run(t, "Custom base", func(t *testing.T) {
		p := retry.Exponential(0, time.Second, time.Hour).WithBase(3).WithJitter(0)
		f := delayFunc(t, 0)
		f(0, func() { require.True(t, p.Attempt(t.Context())) })
		f(time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(3*time.Second, func() { require.True(t, p.Attempt(t.Context())) })
		f(9*time.Second, func() { require.True(t, p.Attempt(t.Context())) })
	})

	run(t, "Infinite attempts", func(t *testing.T) {
		p := retry.Exponential(0, time.Second, time.Minute).WithJitter(0)
		require.True(t, p.Attempt(t.Context()))
		for range 100 {
			require.True(t, p.Attempt(t.Context()))
		}
		f := delayFunc(t, 0)
		f(time.Minute, func() { require.True(t, p.Attempt(t.Context())) })
	})

	run(t, "Context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		p := retry.Exponential(0, time.Second, time.Minute)
		require.True(t, p.Attempt(ctx))
		cancel()
		require.False(t, p.Attempt(ctx))
	})
}

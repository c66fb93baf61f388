package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// wait sleeps for interval, randomly moved by up to jitter*interval in either direction.
func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	if jitter < 0 || jitter >= 1 {
		panic("invalid jitter")
	}

	m := (rand.Float64() * 2) - 1
	j := m * jitter * float64(interval)
	d := interval + time.Duration(j)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func checkJitter(jitter float64) {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
}

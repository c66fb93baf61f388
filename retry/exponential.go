package retry

import (
	"context"
	"math"
	"time"
)

// ExponentialPolicy multiplies the interval by a base after every retry, up to a maximum.
type ExponentialPolicy struct {
	attempted   int
	attempts    int
	jitter      float64
	base        float64
	minInterval time.Duration
	maxInterval time.Duration
}

var _ Policy = (*ExponentialPolicy)(nil)

// Exponential allows attempts attempts in total, starting minInterval apart and doubling the
// interval up to maxInterval. Zero attempts means no limit.
func Exponential(attempts int, minInterval, maxInterval time.Duration) *ExponentialPolicy {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}

	return &ExponentialPolicy{
		attempts:    attempts,
		minInterval: minInterval,
		maxInterval: maxInterval,
		base:        2,
		jitter:      0.1,
	}
}

func (p *ExponentialPolicy) WithBase(base float64) *ExponentialPolicy {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	p.base = base
	return p
}

func (p *ExponentialPolicy) WithJitter(jitter float64) *ExponentialPolicy {
	checkJitter(jitter)
	p.jitter = jitter
	return p
}

func (p *ExponentialPolicy) Attempt(ctx context.Context) (ok bool) {
	defer func() {
		if ok {
			p.attempted += 1
		}
	}()

	if ctx.Err() != nil {
		return false
	}

	if p.attempted == 0 {
		return true
	}

	if p.attempts != 0 && p.attempted >= p.attempts {
		return false
	}

	return wait(ctx, p.interval(), p.jitter)
}

func (p *ExponentialPolicy) Derive() Policy {
	return Exponential(p.attempts, p.minInterval, p.maxInterval).
		WithBase(p.base).
		WithJitter(p.jitter)
}

// interval returns the wait before the next retry, which is minInterval for the first one.
func (p *ExponentialPolicy) interval() time.Duration {
	multiplier := math.Pow(p.base, float64(p.attempted-1))
	interval := float64(p.minInterval) * multiplier
	if interval >= float64(p.maxInterval) {
		return p.maxInterval
	}
	return time.Duration(interval)
}

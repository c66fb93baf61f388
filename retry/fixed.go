package retry

import (
	"context"
	"time"
)

// FixedPolicy waits the same interval before every retry.
type FixedPolicy struct {
	attempted int
	attempts  int
	jitter    float64
	interval  time.Duration
}

var _ Policy = (*FixedPolicy)(nil)

// Fixed allows attempts attempts in total, interval apart. Zero attempts means no limit.
func Fixed(attempts int, interval time.Duration) *FixedPolicy {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	if interval < 0 {
		panic("interval can't be < 0")
	}
	return &FixedPolicy{
		attempts: attempts,
		interval: interval,
		jitter:   0.1,
	}
}

func (p *FixedPolicy) WithJitter(jitter float64) *FixedPolicy {
	checkJitter(jitter)
	p.jitter = jitter
	return p
}

func (p *FixedPolicy) Attempt(ctx context.Context) (ok bool) {
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

	return wait(ctx, p.interval, p.jitter)
}

func (p *FixedPolicy) Derive() Policy {
	return Fixed(p.attempts, p.interval).WithJitter(p.jitter)
}

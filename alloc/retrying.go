package alloc

import (
	"context"
	"errors"
	"fmt"

	"github.com/teenjuna/flat/retry"
)

// RetryingAllocator retries requests rejected with [ErrBudgetExceeded], giving the other buffers
// sharing the [Budget] time to release memory. Other failures are returned right away.
//
// Reallocate has no context parameter, so the context given to [Retrying] bounds every retry for
// the whole lifetime of the allocator.
type RetryingAllocator[Item any] struct {
	ctx    context.Context
	next   Allocator[Item]
	policy retry.Policy
}

var _ Allocator[any] = (*RetryingAllocator[any])(nil)

// Retrying wraps next. Every request gets its own copy of policy. Retries stop when ctx is done.
func Retrying[Item any](ctx context.Context, next Allocator[Item], policy retry.Policy) *RetryingAllocator[Item] {
	if ctx == nil {
		panic("context can't be nil")
	}
	if next == nil {
		panic("allocator can't be nil")
	}
	if policy == nil {
		panic("policy can't be nil")
	}
	return &RetryingAllocator[Item]{
		ctx:    ctx,
		next:   next,
		policy: policy,
	}
}

func (a *RetryingAllocator[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	var (
		policy = a.policy.Derive()
		err    error
	)
	for policy.Attempt(a.ctx) {
		var grown []Item
		grown, err = a.next.Reallocate(items, n)
		if err == nil {
			return grown, nil
		}
		if !errors.Is(err, ErrBudgetExceeded) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}
	if err := a.ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("allocate %d items: no attempt made: %w", n, ErrOutOfMemory)
}

func (a *RetryingAllocator[Item]) Free(items []Item) {
	a.next.Free(items)
}

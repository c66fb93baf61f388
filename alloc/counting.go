package alloc

import "sync/atomic"

// Counter accumulates allocation statistics. It is safe for concurrent use, so a single counter
// can observe any number of buffers and item types.
type Counter struct {
	requested   atomic.Int64
	allocations atomic.Int64
	frees       atomic.Int64
	failures    atomic.Int64
	live        atomic.Int64
}

// Stats is a snapshot of a [Counter].
type Stats struct {
	// RequestedBytes is the sum of the sizes of all requests, successful or not.
	RequestedBytes int64
	// Allocations is the number of successful requests.
	Allocations int64
	// Frees is the number of released storages.
	Frees int64
	// Failures is the number of failed requests.
	Failures int64
	// LiveBytes is the number of bytes allocated and not released yet.
	LiveBytes int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Stats() Stats {
	return Stats{
		RequestedBytes: c.requested.Load(),
		Allocations:    c.allocations.Load(),
		Frees:          c.frees.Load(),
		Failures:       c.failures.Load(),
		LiveBytes:      c.live.Load(),
	}
}

// Reset zeroes every statistic.
func (c *Counter) Reset() {
	c.requested.Store(0)
	c.allocations.Store(0)
	c.frees.Store(0)
	c.failures.Store(0)
	c.live.Store(0)
}

// CountingAllocator records every request passing through it into a [Counter].
type CountingAllocator[Item any] struct {
	next    Allocator[Item]
	counter *Counter
}

var _ Allocator[any] = (*CountingAllocator[any])(nil)

func Counting[Item any](next Allocator[Item], counter *Counter) *CountingAllocator[Item] {
	if next == nil {
		panic("allocator can't be nil")
	}
	if counter == nil {
		panic("counter can't be nil")
	}
	return &CountingAllocator[Item]{
		next:    next,
		counter: counter,
	}
}

func (a *CountingAllocator[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	size := bytesOf[Item](n)
	a.counter.requested.Add(size)

	grown, err := a.next.Reallocate(items, n)
	if err != nil {
		a.counter.failures.Add(1)
		return nil, err
	}

	a.counter.allocations.Add(1)
	a.counter.live.Add(size - bytesOf[Item](len(items)))

	return grown, nil
}

func (a *CountingAllocator[Item]) Free(items []Item) {
	a.counter.frees.Add(1)
	a.counter.live.Add(-bytesOf[Item](len(items)))
	a.next.Free(items)
}

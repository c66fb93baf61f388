package alloc

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Budget is a capacity in bytes shared by every [BudgetedAllocator] created with it. It is safe for
// concurrent use.
type Budget struct {
	sem      *semaphore.Weighted
	capacity int64
	used     atomic.Int64
}

func NewBudget(capacity int64) *Budget {
	if capacity < 1 {
		panic("capacity can't be < 1")
	}
	return &Budget{
		sem:      semaphore.NewWeighted(capacity),
		capacity: capacity,
	}
}

// Capacity returns the total number of bytes the budget admits.
func (b *Budget) Capacity() int64 {
	return b.capacity
}

// Used returns the number of bytes currently held.
func (b *Budget) Used() int64 {
	return b.used.Load()
}

func (b *Budget) acquire(n int64) bool {
	if n == 0 {
		return true
	}
	if !b.sem.TryAcquire(n) {
		return false
	}
	b.used.Add(n)
	return true
}

func (b *Budget) release(n int64) {
	if n == 0 {
		return
	}
	b.used.Add(-n)
	b.sem.Release(n)
}

// BudgetedAllocator fails requests that don't fit into its [Budget].
//
// A request holds the old and the new storage at the same time, like a real reallocation does, so
// even shrinking needs the new size to be available.
type BudgetedAllocator[Item any] struct {
	next   Allocator[Item]
	budget *Budget
}

var _ Allocator[any] = (*BudgetedAllocator[any])(nil)

func Budgeted[Item any](next Allocator[Item], budget *Budget) *BudgetedAllocator[Item] {
	if next == nil {
		panic("allocator can't be nil")
	}
	if budget == nil {
		panic("budget can't be nil")
	}
	return &BudgetedAllocator[Item]{
		next:   next,
		budget: budget,
	}
}

func (a *BudgetedAllocator[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	size, ok := Bytes[Item](n)
	if !ok {
		return nil, fmt.Errorf("allocate %d items: %w", n, ErrOutOfMemory)
	}
	if !a.budget.acquire(int64(size)) {
		return nil, fmt.Errorf("reserve %d bytes: %w", size, ErrBudgetExceeded)
	}

	grown, err := a.next.Reallocate(items, n)
	if err != nil {
		a.budget.release(int64(size))
		return nil, err
	}

	a.budget.release(bytesOf[Item](len(items)))

	return grown, nil
}

func (a *BudgetedAllocator[Item]) Free(items []Item) {
	a.budget.release(bytesOf[Item](len(items)))
	a.next.Free(items)
}

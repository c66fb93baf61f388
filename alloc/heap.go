package alloc

import "fmt"

// Heap is the platform allocator. Storage comes from the Go runtime and is reclaimed by the garbage
// collector, so Free only drops the reference.
//
// The zero value is ready to use.
type Heap[Item any] struct{}

var _ Allocator[any] = Heap[any]{}

func (Heap[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	if n < 1 {
		panic("n can't be < 1")
	}

	size, ok := Bytes[Item](n)
	if !ok || size > MaxBytes {
		return nil, fmt.Errorf("allocate %d items: %w", n, ErrOutOfMemory)
	}

	if len(items) == n && cap(items) == n {
		return items, nil
	}

	grown := make([]Item, n)
	copy(grown, items)

	return grown, nil
}

func (Heap[Item]) Free([]Item) {}

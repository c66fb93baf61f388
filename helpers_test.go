package flat_test

import (
	"testing"

	"github.com/teenjuna/flat"
	"github.com/teenjuna/flat/alloc"
	"github.com/teenjuna/flat/internal/testing/require"
)

func of[Item any](t *testing.T, items ...Item) *flat.Buffer[Item] {
	t.Helper()
	return ofWith(t, alloc.Heap[Item]{}, items...)
}

func ofWith[Item any](t *testing.T, a alloc.Allocator[Item], items ...Item) *flat.Buffer[Item] {
	t.Helper()
	b := flat.New(flat.WithAllocator(a))
	require.Nil(t, b.Resize(len(items)))
	copy(b.Items(), items)
	return b
}

// failing fails every request that doesn't satisfy allow.
func failing[Item any](allow func(items []Item, n int) bool) alloc.Funcs[Item] {
	return alloc.Funcs[Item]{
		ReallocateFunc: func(items []Item, n int) ([]Item, error) {
			if !allow(items, n) {
				return nil, alloc.ErrOutOfMemory
			}
			return alloc.Heap[Item]{}.Reallocate(items, n)
		},
	}
}

func growOnly[Item any](items []Item, n int) bool {
	return n >= len(items)
}

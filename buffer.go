// Package flat implements a growable flat buffer: a single owner of one contiguous, exactly sized
// region of elements with a pluggable allocator.
//
// On top of the lifecycle and the resize engine, the buffer exposes overlap-safe region shifts,
// which are the building blocks of the composite operations (append, insert, remove, extract and
// so on). Every operation that allocates reports failure through its error and leaves the buffer
// untouched; operations that don't allocate can't fail.
//
// Misuse, such as an index out of range or a negative size, is a programming error and panics.
//
// A buffer is not safe for concurrent use.
package flat

import (
	"fmt"

	"github.com/teenjuna/flat/alloc"
)

// Buffer is a growable flat buffer of items.
//
// Its storage holds exactly Len() items: growth is exact-fit, there is never spare capacity. The
// zero value is an empty buffer using [alloc.Heap].
type Buffer[Item any] struct {
	items []Item
	alloc alloc.Allocator[Item]
}

// New returns an empty buffer. It doesn't allocate. Item must not be zero-sized.
func New[Item any](options ...Option[Item]) *Buffer[Item] {
	if alloc.SizeOf[Item]() < 1 {
		panic("element size can't be < 1")
	}
	cfg := newConfig(options...)
	return &Buffer[Item]{
		alloc: cfg.allocator,
	}
}

// Free releases the storage and leaves the buffer empty. Freeing an empty buffer does nothing.
func (b *Buffer[Item]) Free() {
	if b.items == nil {
		return
	}
	b.allocator().Free(b.items)
	b.items = nil
}

// Clone returns a deep copy of the buffer using the same allocator.
//
// On failure the buffer is untouched and nothing has to be freed.
func (b *Buffer[Item]) Clone() (*Buffer[Item], error) {
	c := &Buffer[Item]{alloc: b.alloc}
	if err := c.resize(len(b.items)); err != nil {
		return nil, fmt.Errorf("clone %d items: %w", len(b.items), err)
	}
	copy(c.items, b.items)
	return c, nil
}

// Move transfers the storage into a new buffer and leaves b empty. It doesn't allocate.
func (b *Buffer[Item]) Move() *Buffer[Item] {
	m := &Buffer[Item]{
		items: b.items,
		alloc: b.alloc,
	}
	b.items = nil
	return m
}

// Swap exchanges the storage and the allocators of b and other.
func (b *Buffer[Item]) Swap(other *Buffer[Item]) {
	*b, *other = *other, *b
}

func (b *Buffer[Item]) allocator() alloc.Allocator[Item] {
	if b.alloc == nil {
		return alloc.Heap[Item]{}
	}
	return b.alloc
}

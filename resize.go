package flat

import (
	"fmt"

	"github.com/teenjuna/flat/alloc"
	"github.com/teenjuna/flat/internal/bounds"
)

// Resize changes the number of items to n, reallocating the storage to exactly n items.
//
// Resizing to the current length does nothing and resizing to 0 releases the storage; neither can
// fail. On failure the buffer is left exactly as it was. Items exposed by growth hold whatever the
// allocator provides, which is the zero value for [alloc.Heap].
func (b *Buffer[Item]) Resize(n int) error {
	if n < 0 {
		panic("size can't be < 0")
	}
	if err := b.resize(n); err != nil {
		return fmt.Errorf("resize to %d: %w", n, err)
	}
	return nil
}

// Grow adds amount items to the end of the buffer. See [Buffer.Resize].
func (b *Buffer[Item]) Grow(amount int) error {
	if amount < 0 {
		panic("amount can't be < 0")
	}
	if err := b.grow(amount); err != nil {
		return fmt.Errorf("grow by %d: %w", amount, err)
	}
	return nil
}

// Shrink removes amount items from the end of the buffer. See [Buffer.Resize].
func (b *Buffer[Item]) Shrink(amount int) error {
	if amount < 0 {
		panic("amount can't be < 0")
	}
	if amount > len(b.items) {
		panic("amount can't be > length")
	}
	if err := b.resize(len(b.items) - amount); err != nil {
		return fmt.Errorf("shrink by %d: %w", amount, err)
	}
	return nil
}

func (b *Buffer[Item]) grow(amount int) error {
	n, ok := bounds.Add(len(b.items), amount)
	if !ok {
		return alloc.ErrOutOfMemory
	}
	return b.resize(n)
}

func (b *Buffer[Item]) resize(n int) error {
	switch n {
	case len(b.items):
		return nil
	case 0:
		b.Free()
		return nil
	}

	items, err := b.allocator().Reallocate(b.items, n)
	if err != nil {
		return err
	}

	b.items = items[:n:n]

	return nil
}

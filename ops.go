package flat

import (
	"fmt"
	"slices"

	"github.com/teenjuna/flat/internal/bounds"
)

// Append adds the items of other to the end of the buffer. Other may be the buffer itself.
func (b *Buffer[Item]) Append(other *Buffer[Item]) error {
	if err := b.append(other); err != nil {
		return fmt.Errorf("append %d items: %w", other.Len(), err)
	}
	return nil
}

// Prepend adds the items of other to the start of the buffer. Other may be the buffer itself.
func (b *Buffer[Item]) Prepend(other *Buffer[Item]) error {
	if err := b.prepend(other); err != nil {
		return fmt.Errorf("prepend %d items: %w", other.Len(), err)
	}
	return nil
}

// Insert adds the items of other before item i, 0 <= i <= Len(). Other may be the buffer itself.
func (b *Buffer[Item]) Insert(i int, other *Buffer[Item]) error {
	if err := b.insert(i, other); err != nil {
		return fmt.Errorf("insert %d items at %d: %w", other.Len(), i, err)
	}
	return nil
}

// Remove deletes the items [start, start+size).
//
// Removal shrinks the storage and can therefore fail, in which case the buffer is left exactly as
// it was.
func (b *Buffer[Item]) Remove(start, size int) error {
	if err := b.remove(start, size); err != nil {
		return fmt.Errorf("remove %d items at %d: %w", size, start, err)
	}
	return nil
}

// Slice returns a new buffer, using the same allocator, with a copy of the items
// [start, start+size). The buffer itself is untouched.
func (b *Buffer[Item]) Slice(start, size int) (*Buffer[Item], error) {
	s, err := b.copySlice(start, size)
	if err != nil {
		return nil, fmt.Errorf("slice %d items at %d: %w", size, start, err)
	}
	return s, nil
}

// Extract moves the items [start, start+size) into a new buffer using the same allocator.
//
// On failure the buffer is left exactly as it was and nothing has to be freed.
func (b *Buffer[Item]) Extract(start, size int) (*Buffer[Item], error) {
	s, err := b.extract(start, size)
	if err != nil {
		return nil, fmt.Errorf("extract %d items at %d: %w", size, start, err)
	}
	return s, nil
}

// MoveSlice has the contract of [Buffer.Extract]. When the range covers the whole buffer the
// storage itself is handed over, like [Buffer.Move] does, and nothing is allocated.
func (b *Buffer[Item]) MoveSlice(start, size int) (*Buffer[Item], error) {
	if !bounds.Range(len(b.items), start, size) {
		panic("range out of bounds")
	}
	if start == 0 && size == len(b.items) {
		return b.Move(), nil
	}
	return b.Extract(start, size)
}

func (b *Buffer[Item]) append(other *Buffer[Item]) error {
	n, m := len(b.items), len(other.items)
	if err := b.grow(m); err != nil {
		return err
	}
	copy(b.items[n:], other.items[:m])
	return nil
}

func (b *Buffer[Item]) prepend(other *Buffer[Item]) error {
	m := len(other.items)
	if err := b.grow(m); err != nil {
		return err
	}
	// When other is b, the stale head left by the shift is exactly the original content.
	b.ShiftRight(m)
	copy(b.items[:m], other.items[:m])
	return nil
}

func (b *Buffer[Item]) insert(i int, other *Buffer[Item]) error {
	n, m := len(b.items), len(other.items)
	if i < 0 || i > n {
		panic("index out of range")
	}
	if err := b.grow(m); err != nil {
		return err
	}

	b.ShiftSliceRight(m, i, n+m-i)

	if other == b {
		// The original content now lives in [0, i) and [i+m, 2m).
		copy(b.items[i:], b.items[:i])
		copy(b.items[2*i:i+m], b.items[i+m:])
		return nil
	}

	copy(b.items[i:i+m], other.items)

	return nil
}

func (b *Buffer[Item]) remove(start, size int) error {
	n := len(b.items)
	if !bounds.Range(n, start, size) {
		panic("range out of bounds")
	}
	if size == 0 {
		return nil
	}

	// Rotating instead of shifting keeps the removed items in the tail, so a failed shrink can be
	// undone.
	tail := b.items[start:]
	rotate(tail, size)

	if err := b.resize(n - size); err != nil {
		rotate(tail, len(tail)-size)
		return err
	}

	return nil
}

func (b *Buffer[Item]) copySlice(start, size int) (*Buffer[Item], error) {
	src := b.slice(start, size)
	s := &Buffer[Item]{alloc: b.alloc}
	if err := s.resize(size); err != nil {
		return nil, err
	}
	copy(s.items, src)
	return s, nil
}

func (b *Buffer[Item]) extract(start, size int) (*Buffer[Item], error) {
	s, err := b.copySlice(start, size)
	if err != nil {
		return nil, err
	}
	if err := b.remove(start, size); err != nil {
		s.Free()
		return nil, err
	}
	return s, nil
}

// rotate moves s[k:] to the start of s and s[:k] to its end.
func rotate[Item any](s []Item, k int) {
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

package flat

import "github.com/teenjuna/flat/alloc"

// Len returns the number of items in the buffer.
func (b *Buffer[Item]) Len() int {
	return len(b.items)
}

// Empty reports whether the buffer holds no items.
func (b *Buffer[Item]) Empty() bool {
	return len(b.items) == 0
}

// ElementSize returns the size in bytes of a single item.
func (b *Buffer[Item]) ElementSize() int {
	return alloc.SizeOf[Item]()
}

// Offset returns the byte offset of item i from the start of the storage. Offset(Len()) is the
// one-past-end offset and has no item behind it.
func (b *Buffer[Item]) Offset(i int) int {
	if i < 0 || i > len(b.items) {
		panic("index out of range")
	}
	return i * b.ElementSize()
}

// Begin returns the offset of the first item, which is always 0.
func (b *Buffer[Item]) Begin() int {
	return 0
}

// End returns the one-past-end offset. Begin() == End() for an empty buffer.
func (b *Buffer[Item]) End() int {
	return b.Offset(len(b.items))
}

// At returns a pointer to item i. The pointer is valid until the next successful resize or Free.
func (b *Buffer[Item]) At(i int) *Item {
	if i < 0 || i >= len(b.items) {
		panic("index out of range")
	}
	return &b.items[i]
}

// First returns a pointer to the first item. It panics if the buffer is empty.
func (b *Buffer[Item]) First() *Item {
	if len(b.items) == 0 {
		panic("buffer is empty")
	}
	return &b.items[0]
}

// Last returns a pointer to the last item. It panics if the buffer is empty.
func (b *Buffer[Item]) Last() *Item {
	if len(b.items) == 0 {
		panic("buffer is empty")
	}
	return &b.items[len(b.items)-1]
}

func (b *Buffer[Item]) Get(i int) Item {
	return *b.At(i)
}

func (b *Buffer[Item]) Set(i int, item Item) {
	*b.At(i) = item
}

// Items returns the storage itself, nil for an empty buffer. Writes through the returned slice are
// writes to the buffer. The slice is valid until the next successful resize or Free.
func (b *Buffer[Item]) Items() []Item {
	return b.items
}

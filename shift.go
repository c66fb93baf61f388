package flat

import "github.com/teenjuna/flat/internal/bounds"

// ShiftLeft moves every item steps positions towards the start. The first steps items are
// overwritten and the last steps items keep their previous contents.
func (b *Buffer[Item]) ShiftLeft(steps int) {
	checkSteps(steps, len(b.items))
	copy(b.items, b.items[steps:])
}

// ShiftRight moves every item steps positions towards the end. The last steps items are
// overwritten and the first steps items keep their previous contents.
//
// Grow the buffer first to keep the last items.
func (b *Buffer[Item]) ShiftRight(steps int) {
	checkSteps(steps, len(b.items))
	copy(b.items[steps:], b.items)
}

// ShiftSliceLeft is [Buffer.ShiftLeft] confined to the items [start, start+size).
func (b *Buffer[Item]) ShiftSliceLeft(steps, start, size int) {
	s := b.slice(start, size)
	checkSteps(steps, size)
	copy(s, s[steps:])
}

// ShiftSliceRight is [Buffer.ShiftRight] confined to the items [start, start+size).
func (b *Buffer[Item]) ShiftSliceRight(steps, start, size int) {
	s := b.slice(start, size)
	checkSteps(steps, size)
	copy(s[steps:], s)
}

func (b *Buffer[Item]) slice(start, size int) []Item {
	if !bounds.Range(len(b.items), start, size) {
		panic("range out of bounds")
	}
	return b.items[start : start+size]
}

func checkSteps(steps, size int) {
	if steps < 0 {
		panic("steps can't be < 0")
	}
	if steps > size {
		panic("steps can't be > size")
	}
}

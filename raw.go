package flat

import (
	"fmt"

	"github.com/teenjuna/flat/alloc"
	"github.com/teenjuna/flat/internal/bounds"
)

// Raw is the type-erased variant of [Buffer] for layouts only known at runtime. Elements are
// opaque runs of ElementSize() bytes.
//
// Operations combining two Raw buffers require equal element sizes, except [Raw.Swap].
//
// A Raw must be created with [NewRaw]. The zero value has no element size: it reads as empty and
// panics on any resize.
type Raw struct {
	elementSize int
	bytes       Buffer[byte]
}

// NewRaw returns an empty buffer of elements of elementSize bytes. It doesn't allocate.
func NewRaw(elementSize int, options ...Option[byte]) *Raw {
	if elementSize < 1 {
		panic("element size can't be < 1")
	}
	return &Raw{
		elementSize: elementSize,
		bytes:       *New(options...),
	}
}

func (r *Raw) Len() int {
	if r.elementSize == 0 {
		return 0
	}
	return r.bytes.Len() / r.elementSize
}

func (r *Raw) Empty() bool {
	return r.bytes.Empty()
}

func (r *Raw) ElementSize() int {
	return r.elementSize
}

// Offset returns the byte offset of element i, 0 <= i <= Len().
func (r *Raw) Offset(i int) int {
	if i < 0 || i > r.Len() {
		panic("index out of range")
	}
	return i * r.elementSize
}

func (r *Raw) Begin() int {
	return 0
}

func (r *Raw) End() int {
	return r.bytes.Len()
}

// Element returns the bytes of element i. The returned slice can't be appended past the element
// and is valid until the next successful resize or Free.
func (r *Raw) Element(i int) []byte {
	if i < 0 || i >= r.Len() {
		panic("index out of range")
	}
	off := i * r.elementSize
	return r.bytes.items[off : off+r.elementSize : off+r.elementSize]
}

func (r *Raw) First() []byte {
	if r.Empty() {
		panic("buffer is empty")
	}
	return r.Element(0)
}

func (r *Raw) Last() []byte {
	if r.Empty() {
		panic("buffer is empty")
	}
	return r.Element(r.Len() - 1)
}

// Set overwrites element i with element, which must be exactly ElementSize() bytes long.
func (r *Raw) Set(i int, element []byte) {
	if len(element) != r.elementSize {
		panic("element size mismatch")
	}
	copy(r.Element(i), element)
}

// Bytes returns the storage itself, nil for an empty buffer.
func (r *Raw) Bytes() []byte {
	return r.bytes.Items()
}

func (r *Raw) Free() {
	r.bytes.Free()
}

func (r *Raw) Clone() (*Raw, error) {
	c, err := r.bytes.copySlice(0, r.bytes.Len())
	if err != nil {
		return nil, fmt.Errorf("clone %d elements: %w", r.Len(), err)
	}
	return &Raw{elementSize: r.elementSize, bytes: *c}, nil
}

func (r *Raw) Move() *Raw {
	return &Raw{elementSize: r.elementSize, bytes: *r.bytes.Move()}
}

// Swap exchanges everything including the element sizes, which may differ.
func (r *Raw) Swap(other *Raw) {
	*r, *other = *other, *r
}

func (r *Raw) Resize(n int) error {
	if n < 0 {
		panic("size can't be < 0")
	}
	if err := r.resize(n); err != nil {
		return fmt.Errorf("resize to %d: %w", n, err)
	}
	return nil
}

func (r *Raw) Grow(amount int) error {
	if amount < 0 {
		panic("amount can't be < 0")
	}
	n, ok := bounds.Add(r.Len(), amount)
	if !ok {
		return fmt.Errorf("grow by %d: %w", amount, alloc.ErrOutOfMemory)
	}
	if err := r.resize(n); err != nil {
		return fmt.Errorf("grow by %d: %w", amount, err)
	}
	return nil
}

func (r *Raw) Shrink(amount int) error {
	if amount < 0 {
		panic("amount can't be < 0")
	}
	if amount > r.Len() {
		panic("amount can't be > length")
	}
	if err := r.resize(r.Len() - amount); err != nil {
		return fmt.Errorf("shrink by %d: %w", amount, err)
	}
	return nil
}

func (r *Raw) ShiftLeft(steps int) {
	checkSteps(steps, r.Len())
	r.bytes.ShiftLeft(steps * r.elementSize)
}

func (r *Raw) ShiftRight(steps int) {
	checkSteps(steps, r.Len())
	r.bytes.ShiftRight(steps * r.elementSize)
}

func (r *Raw) ShiftSliceLeft(steps, start, size int) {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	checkSteps(steps, size)
	r.bytes.ShiftSliceLeft(steps*r.elementSize, start*r.elementSize, size*r.elementSize)
}

func (r *Raw) ShiftSliceRight(steps, start, size int) {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	checkSteps(steps, size)
	r.bytes.ShiftSliceRight(steps*r.elementSize, start*r.elementSize, size*r.elementSize)
}

func (r *Raw) Append(other *Raw) error {
	r.checkElementSize(other)
	if err := r.bytes.append(&other.bytes); err != nil {
		return fmt.Errorf("append %d elements: %w", other.Len(), err)
	}
	return nil
}

func (r *Raw) Prepend(other *Raw) error {
	r.checkElementSize(other)
	if err := r.bytes.prepend(&other.bytes); err != nil {
		return fmt.Errorf("prepend %d elements: %w", other.Len(), err)
	}
	return nil
}

func (r *Raw) Insert(i int, other *Raw) error {
	r.checkElementSize(other)
	if i < 0 || i > r.Len() {
		panic("index out of range")
	}
	if err := r.bytes.insert(i*r.elementSize, &other.bytes); err != nil {
		return fmt.Errorf("insert %d elements at %d: %w", other.Len(), i, err)
	}
	return nil
}

func (r *Raw) Remove(start, size int) error {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	if err := r.bytes.remove(start*r.elementSize, size*r.elementSize); err != nil {
		return fmt.Errorf("remove %d elements at %d: %w", size, start, err)
	}
	return nil
}

func (r *Raw) Slice(start, size int) (*Raw, error) {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	s, err := r.bytes.copySlice(start*r.elementSize, size*r.elementSize)
	if err != nil {
		return nil, fmt.Errorf("slice %d elements at %d: %w", size, start, err)
	}
	return &Raw{elementSize: r.elementSize, bytes: *s}, nil
}

func (r *Raw) Extract(start, size int) (*Raw, error) {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	s, err := r.bytes.extract(start*r.elementSize, size*r.elementSize)
	if err != nil {
		return nil, fmt.Errorf("extract %d elements at %d: %w", size, start, err)
	}
	return &Raw{elementSize: r.elementSize, bytes: *s}, nil
}

func (r *Raw) MoveSlice(start, size int) (*Raw, error) {
	if !bounds.Range(r.Len(), start, size) {
		panic("range out of bounds")
	}
	if start == 0 && size == r.Len() {
		return r.Move(), nil
	}
	return r.Extract(start, size)
}

func (r *Raw) resize(n int) error {
	if r.elementSize < 1 {
		panic("element size can't be < 1")
	}
	size, ok := bounds.Mul(n, r.elementSize)
	if !ok {
		return alloc.ErrOutOfMemory
	}
	return r.bytes.resize(size)
}

func (r *Raw) checkElementSize(other *Raw) {
	if other.elementSize != r.elementSize {
		panic("element size mismatch")
	}
}

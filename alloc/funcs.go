package alloc

// Funcs adapts a pair of plain functions to [Allocator]. A nil function falls back to [Heap].
type Funcs[Item any] struct {
	ReallocateFunc func(items []Item, n int) ([]Item, error)
	FreeFunc       func(items []Item)
}

var _ Allocator[any] = Funcs[any]{}

func (f Funcs[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	if f.ReallocateFunc == nil {
		return Heap[Item]{}.Reallocate(items, n)
	}
	return f.ReallocateFunc(items, n)
}

func (f Funcs[Item]) Free(items []Item) {
	if f.FreeFunc != nil {
		f.FreeFunc(items)
	}
}

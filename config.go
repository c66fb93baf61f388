package flat

import (
	"github.com/teenjuna/flat/alloc"
)

type Option[Item any] = func(*config[Item])

// WithAllocator makes the buffer request and release its storage through a.
//
// Buffers derived from the buffer (clones, slices, moved buffers) inherit the allocator.
func WithAllocator[Item any](a alloc.Allocator[Item]) Option[Item] {
	if a == nil {
		panic("allocator can't be nil")
	}
	return func(c *config[Item]) {
		c.allocator = a
	}
}

type config[Item any] struct {
	allocator alloc.Allocator[Item]
}

func newConfig[Item any](options ...Option[Item]) *config[Item] {
	options = append([]Option[Item]{
		WithAllocator[Item](alloc.Heap[Item]{}),
	}, options...)

	cfg := config[Item]{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}

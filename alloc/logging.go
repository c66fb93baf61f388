package alloc

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// LoggedAllocator logs every request passing through it: successful ones at debug level, failed
// ones at warn level.
type LoggedAllocator[Item any] struct {
	next   Allocator[Item]
	logger log.Logger
}

var _ Allocator[any] = (*LoggedAllocator[any])(nil)

func Logged[Item any](next Allocator[Item], logger log.Logger) *LoggedAllocator[Item] {
	if next == nil {
		panic("allocator can't be nil")
	}
	if logger == nil {
		panic("logger can't be nil")
	}
	return &LoggedAllocator[Item]{
		next:   next,
		logger: log.With(logger, "component", "alloc"),
	}
}

func (a *LoggedAllocator[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	grown, err := a.next.Reallocate(items, n)
	if err != nil {
		level.Warn(a.logger).Log("msg", "reallocation failed", "from", len(items), "to", n, "err", err)
		return nil, err
	}

	level.Debug(a.logger).Log("msg", "reallocated", "from", len(items), "to", n, "bytes", bytesOf[Item](n))

	return grown, nil
}

func (a *LoggedAllocator[Item]) Free(items []Item) {
	level.Debug(a.logger).Log("msg", "freed", "items", len(items), "bytes", bytesOf[Item](len(items)))
	a.next.Free(items)
}

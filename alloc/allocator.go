// This package contains the main [Allocator] interface, the platform allocator and several
// decorators that observe or limit allocation requests.
package alloc

import (
	"errors"
	"math"
	"reflect"

	"github.com/teenjuna/flat/internal/bounds"
)

var (
	// ErrOutOfMemory is returned when a request can't be satisfied.
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrBudgetExceeded is returned by [BudgetedAllocator] when a request doesn't fit into its
	// [Budget].
	ErrBudgetExceeded = errors.New("alloc: budget exceeded")
)

// MaxBytes is the largest single request [Heap] tries to satisfy. Larger requests fail with
// [ErrOutOfMemory] instead of crashing the runtime.
const MaxBytes = min(1<<47, math.MaxInt)

// Allocator provides and releases the storage of buffers holding items of type Item.
//
// Implementations used by a single buffer are not required to be thread-safe. The decorators of
// this package are safe to share between buffers.
type Allocator[Item any] interface {
	// Reallocate returns storage for exactly n items, n > 0. The first min(len(items), n) items of
	// the result equal those of items. Items may be nil, in which case fresh storage is returned.
	//
	// On error items stays valid and remains owned by the caller.
	Reallocate(items []Item, n int) ([]Item, error)
	// Free releases storage previously returned by Reallocate.
	Free(items []Item)
}

// SizeOf returns the size in bytes of a single Item.
func SizeOf[Item any]() int {
	return int(reflect.TypeFor[Item]().Size())
}

// Bytes returns the size in bytes of n items, or ok = false if it overflows int.
func Bytes[Item any](n int) (size int, ok bool) {
	return bounds.Mul(n, SizeOf[Item]())
}

// bytesOf is Bytes for sizes that are already known to be allocated.
func bytesOf[Item any](n int) int64 {
	size, ok := Bytes[Item](n)
	if !ok {
		return math.MaxInt64
	}
	return int64(size)
}

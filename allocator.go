package flat

import "github.com/teenjuna/flat/alloc"

// Allocator provides and releases the storage of a [Buffer]. See package alloc for
// implementations.
type Allocator[Item any] = alloc.Allocator[Item]

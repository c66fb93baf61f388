// This package contains the main [Codec] interface and several implementations inside subpackages.
package codec

// Codec encodes and decodes the items of a buffer.
//
// Implementations are not considered thread-safe.
type Codec[Item any] interface {
	// Encode serializes items into a byte slice owned by the caller.
	Encode(items []Item) ([]byte, error)
	// Decode deserializes a byte slice into items, pushing each to the provided function in order.
	Decode(data []byte, push func(Item)) error
}

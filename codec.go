package flat

import (
	"fmt"

	"github.com/teenjuna/flat/codec"
)

// Codec encodes and decodes the items of a [Buffer]. See package codec for implementations.
type Codec[Item any] = codec.Codec[Item]

// Encode serializes the items of the buffer with c.
func (b *Buffer[Item]) Encode(c codec.Codec[Item]) ([]byte, error) {
	if c == nil {
		panic("codec can't be nil")
	}
	data, err := c.Encode(b.items)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Decode deserializes data with c and appends the items to the buffer, growing it once.
//
// On failure the buffer is untouched.
func (b *Buffer[Item]) Decode(c codec.Codec[Item], data []byte) error {
	if c == nil {
		panic("codec can't be nil")
	}

	var items []Item
	if err := c.Decode(data, func(item Item) {
		items = append(items, item)
	}); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	n := len(b.items)
	if err := b.grow(len(items)); err != nil {
		return fmt.Errorf("decode: grow by %d: %w", len(items), err)
	}
	copy(b.items[n:], items)

	return nil
}

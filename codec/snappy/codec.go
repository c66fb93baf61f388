// Package snappy wraps another codec and compresses its output with Snappy.
package snappy

import (
	"fmt"

	"github.com/golang/snappy"

	"github.com/teenjuna/flat/codec"
)

type Codec[Item any] struct {
	inner codec.Codec[Item]
}

var _ codec.Codec[any] = (*Codec[any])(nil)

func Wrap[Item any](inner codec.Codec[Item]) *Codec[Item] {
	if inner == nil {
		panic("codec can't be nil")
	}
	return &Codec[Item]{
		inner: inner,
	}
}

func (c *Codec[Item]) Encode(items []Item) ([]byte, error) {
	data, err := c.inner.Encode(items)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("snappy: %w", err)
	}
	return c.inner.Decode(raw, push)
}

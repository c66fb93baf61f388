package json

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"

	"github.com/teenjuna/flat/codec"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

type Codec[Item any] struct {
	buf *bytes.Buffer
}

var _ codec.Codec[any] = (*Codec[any])(nil)

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{
		buf: new(bytes.Buffer),
	}
}

func (c *Codec[Item]) Encode(items []Item) ([]byte, error) {
	c.buf.Reset()
	enc := api.NewEncoder(c.buf)

	if err := enc.Encode(items); err != nil {
		return nil, err
	}

	res := c.buf.Bytes()
	out := make([]byte, len(res))
	copy(out, res)

	return out, nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	var items []Item
	if err := api.Unmarshal(data, &items); err != nil {
		return err
	}

	for _, item := range items {
		push(item)
	}

	return nil
}

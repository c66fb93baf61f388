package msgp

import (
	"github.com/tinylib/msgp/msgp"

	"github.com/teenjuna/flat/codec"
)

// Codec encodes items as a concatenation of MessagePack objects. Items must implement the
// interfaces generated by the msgp tool.
type Codec[Item any, ItemPtr msgpable[Item]] struct {
	buf []byte
}

var _ codec.Codec[msgp.Raw] = (*Codec[msgp.Raw, *msgp.Raw])(nil)

func New[Item any, ItemPtr msgpable[Item]]() *Codec[Item, ItemPtr] {
	return &Codec[Item, ItemPtr]{
		buf: make([]byte, 0),
	}
}

func (c *Codec[Item, ItemPtr]) Encode(items []Item) ([]byte, error) {
	c.buf = c.buf[:0]
	for i := range items {
		b, err := ItemPtr(&items[i]).MarshalMsg(c.buf)
		if err != nil {
			return nil, err
		}
		c.buf = b
	}

	out := make([]byte, len(c.buf))
	copy(out, c.buf)

	return out, nil
}

func (c *Codec[Item, ItemPtr]) Decode(data []byte, push func(Item)) error {
	for len(data) > 0 {
		var item Item
		rest, err := ItemPtr(&item).UnmarshalMsg(data)
		if err != nil {
			return err
		}
		data = rest
		push(item)
	}

	return nil
}

type msgpable[Item any] interface {
	*Item
	msgp.Encodable
	msgp.Decodable
	msgp.Marshaler
	msgp.Unmarshaler
}

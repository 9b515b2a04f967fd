package format

import (
	"io"

	"github.com/dhamidi/downstrip/grammar"
)

// ValueEncoder writes only the value of the root node.
type ValueEncoder struct {
	w    io.Writer
	node *grammar.Node
}

func NewValueEncoder(w io.Writer) *ValueEncoder {
	return &ValueEncoder{w: w}
}

func (e *ValueEncoder) Encode(node *grammar.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *ValueEncoder) MarshalText() ([]byte, error) {
	if e.node == nil {
		return nil, nil
	}
	return []byte(e.node.Value), nil
}

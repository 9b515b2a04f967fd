// Package format renders parse trees produced by grammar files.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/downstrip/grammar"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *grammar.Node) error
}

// Names lists the encoders New understands.
var Names = []string{"json", "tree", "value"}

// New returns the encoder registered under name, writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	case "value":
		return NewValueEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

// write emits text followed by a newline.
func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	if _, err := w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

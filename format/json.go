package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/downstrip/grammar"
)

type JSONEncoder struct {
	w    io.Writer
	node *grammar.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *grammar.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.node), "", "  ")
}

type jsonNode struct {
	Rule     string      `json:"rule"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text"`
	Value    string      `json:"value"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func nodeToJSON(n *grammar.Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Rule:  n.Rule,
		Span:  jsonSpan{Start: n.Span.Start, End: n.Span.End},
		Text:  n.Text,
		Value: n.Value,
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(c))
	}
	return jn
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/downstrip/grammar"
)

// TreeEncoder writes one line per node, indented by depth:
//
//	gt [0,5) "A>B>C" => "(A > (B > C))"
//	  atom [0,1) "A"
type TreeEncoder struct {
	w      io.Writer
	node   *grammar.Node
	Indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, Indent: "  "}
}

func (e *TreeEncoder) Encode(node *grammar.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, e.node, 0)
	return []byte(strings.TrimSuffix(sb.String(), "\n")), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n *grammar.Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat(e.Indent, depth))
	fmt.Fprintf(sb, "%s %s %q", n.Rule, n.Span, n.Text)
	if n.Value != n.Text {
		fmt.Fprintf(sb, " => %q", n.Value)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		e.writeNode(sb, c, depth+1)
	}
}

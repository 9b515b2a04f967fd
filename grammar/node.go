package grammar

import (
	"strings"

	"github.com/dhamidi/downstrip/pattern"
)

// Node is the output of a grammar-file parser: one node per span a rule
// accepted.
type Node struct {
	Rule     string       // Name of the rule that accepted the span
	Span     pattern.Span // Source span covering this node
	Text     string       // Literal text of the span
	Value    string       // Rendered emit template, or Text without one
	Children []*Node      // Parsed groups, absent ones left out
}

// Walk calls fn for n and its descendants in depth-first order, stopping
// early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// emitData is the dot of an emit template.
type emitData struct {
	match    *pattern.Match
	children []*Node // indexed like the rule's children; nil when absent
}

// Text returns the matched text.
func (d emitData) Text() string {
	return d.match.String()
}

// Group returns capture group i of the match, including ignored groups.
func (d emitData) Group(i int) string {
	return d.match.Group(i)
}

// Child returns the value of child i, or "" when it is absent.
func (d emitData) Child(i int) string {
	if i < 0 || i >= len(d.children) || d.children[i] == nil {
		return ""
	}
	return d.children[i].Value
}

// Join returns the values of all present children joined by sep.
func (d emitData) Join(sep string) string {
	values := make([]string, 0, len(d.children))
	for _, c := range d.children {
		if c != nil {
			values = append(values, c.Value)
		}
	}
	return strings.Join(values, sep)
}

package parser

import (
	"fmt"

	"github.com/dhamidi/downstrip/pattern"
)

// Rule is a single entry of a rule list: a recognizer for whole spans and a
// constructor for their output.
//
// Rules hold no per-call state. The same rule may serve any number of
// parses, concurrently.
type Rule[O any] interface {
	// Pattern must match the entire span for the rule to be considered.
	Pattern() pattern.Pattern

	// Transform rewrites a match before its groups are extracted. Returning
	// nil vetoes the rule for this span.
	Transform(m *pattern.Match) *pattern.Match

	// Ignores reports whether capture group i (1-based) is left unparsed.
	// Ignored groups do not appear among the handler's children.
	Ignores(i int) bool

	// Handle builds the output for a match. A false result rejects the
	// match and the next rule in the list is tried.
	Handle(m *pattern.Match, children *Children[O], p *Parser[O]) (O, bool, error)
}

// Handler builds output from a match, its lazily parsed children and the
// parser, for rules that need to recurse outside the group mechanism.
type Handler[O any] func(m *pattern.Match, children *Children[O], p *Parser[O]) (O, bool, error)

// ChildFunc builds output from a match and its children.
type ChildFunc[O any] func(m *pattern.Match, children *Children[O]) (O, bool, error)

// MatchFunc builds output from the match alone.
type MatchFunc[O any] func(m *pattern.Match) (O, bool)

type rule[O any] struct {
	pattern pattern.Pattern
	handler Handler[O]
}

// NewRule returns a rule with the default Transform (identity) and Ignores
// (never).
func NewRule[O any](p pattern.Pattern, h Handler[O]) Rule[O] {
	return &rule[O]{pattern: p, handler: h}
}

// ChildRule returns a rule whose handler sees the match and its children.
func ChildRule[O any](p pattern.Pattern, h ChildFunc[O]) Rule[O] {
	return NewRule(p, func(m *pattern.Match, children *Children[O], _ *Parser[O]) (O, bool, error) {
		return h(m, children)
	})
}

// MatchRule returns a rule whose handler sees only the match. Its groups
// are still parsed on demand, but nothing demands them.
func MatchRule[O any](p pattern.Pattern, h MatchFunc[O]) Rule[O] {
	return NewRule(p, func(m *pattern.Match, _ *Children[O], _ *Parser[O]) (O, bool, error) {
		v, ok := h(m)
		return v, ok, nil
	})
}

// Terminal returns a shallow rule built from the match alone: it consumes
// the literal matched text and never descends into any group.
func Terminal[O any](p pattern.Pattern, h MatchFunc[O]) Rule[O] {
	return Shallow(MatchRule(p, h))
}

func (r *rule[O]) Pattern() pattern.Pattern {
	return r.pattern
}

func (r *rule[O]) Transform(m *pattern.Match) *pattern.Match {
	return m
}

func (r *rule[O]) Ignores(int) bool {
	return false
}

func (r *rule[O]) Handle(m *pattern.Match, children *Children[O], p *Parser[O]) (O, bool, error) {
	return r.handler(m, children, p)
}

func (r *rule[O]) String() string {
	return fmt.Sprintf("rule(%s)", r.pattern)
}

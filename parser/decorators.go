package parser

import (
	"fmt"
	"slices"

	"github.com/dhamidi/downstrip/pattern"
)

// Decorators wrap a rule, replace one part of its contract and delegate the
// rest through the embedded Rule. The parser only ever sees the Rule
// interface, so new decorators need no support from it.

type earlyRule[O any] struct {
	Rule[O]
	transform func(*pattern.Match) *pattern.Match
}

// Early replaces the Transform of r with fn. fn runs before any group is
// extracted; it may veto the match by returning nil or reshape it, for
// example into group boundaries computed elsewhere.
func Early[O any](r Rule[O], fn func(*pattern.Match) *pattern.Match) Rule[O] {
	return &earlyRule[O]{Rule: r, transform: fn}
}

func (r *earlyRule[O]) Transform(m *pattern.Match) *pattern.Match {
	return r.transform(m)
}

func (r *earlyRule[O]) String() string {
	return fmt.Sprintf("early(%v)", r.Rule)
}

type maskedRule[O any] struct {
	Rule[O]
	groups []int
}

// Mask makes r ignore the listed capture groups. They are never parsed and
// never appear among the handler's children.
func Mask[O any](r Rule[O], groups ...int) Rule[O] {
	g := slices.Clone(groups)
	slices.Sort(g)
	return &maskedRule[O]{Rule: r, groups: slices.Compact(g)}
}

func (r *maskedRule[O]) Ignores(i int) bool {
	_, found := slices.BinarySearch(r.groups, i)
	return found || r.Rule.Ignores(i)
}

func (r *maskedRule[O]) String() string {
	return fmt.Sprintf("mask(%v, %v)", r.Rule, r.groups)
}

type shallowRule[O any] struct {
	Rule[O]
}

// Shallow makes r ignore every capture group: it consumes only the literal
// matched text.
func Shallow[O any](r Rule[O]) Rule[O] {
	return &shallowRule[O]{Rule: r}
}

func (r *shallowRule[O]) Ignores(int) bool {
	return true
}

func (r *shallowRule[O]) String() string {
	return fmt.Sprintf("shallow(%v)", r.Rule)
}

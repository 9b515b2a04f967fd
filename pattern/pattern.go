// Package pattern is the matching primitive the parser is built on.
//
// A Pattern can do two things against a region of an immutable text: decide
// whether it matches the whole region, reporting capture group boundaries,
// and list its non-overlapping matches inside the region. Regions behave as
// if they were the entire input, so anchors match at region bounds and
// nothing outside the region is visible to the engine.
//
// Two engines are provided. Compile uses the standard library's RE2 engine,
// which runs in linear time and is the default. CompileBacktracking uses a
// backtracking engine for grammars that need backreferences, lookaround or
// atomic groups.
package pattern

import "regexp"

// Pattern is a compiled pattern.
type Pattern interface {
	// String returns the source expression.
	String() string

	// MatchSpan reports the match of the pattern against the whole of span,
	// or nil when the pattern does not match the entire region.
	MatchSpan(text string, span Span) (*Match, error)

	// FindAll returns the spans of all non-overlapping matches inside span,
	// in ascending order.
	FindAll(text string, span Span) ([]Span, error)
}

// Literal returns a pattern matching s literally.
func Literal(s string) *Regexp {
	return MustCompile(regexp.QuoteMeta(s))
}

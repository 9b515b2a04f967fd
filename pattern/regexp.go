package pattern

import (
	"fmt"
	"regexp"
)

// Regexp is a pattern backed by the standard library's RE2 engine.
//
// Submatches follow leftmost-first semantics: among the ways the pattern can
// cover the region, the one a backtracking engine would find first wins.
// That is what lets a reluctant `(.*?)` and a greedy `(.*)` pick different
// split points for the same operator.
type Regexp struct {
	expr  string
	find  *regexp.Regexp
	whole *regexp.Regexp
}

// Compile compiles expr for the RE2 engine.
func Compile(expr string) (*Regexp, error) {
	find, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	whole, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile anchored pattern %q: %w", expr, err)
	}
	return &Regexp{expr: expr, find: find, whole: whole}, nil
}

// MustCompile is like Compile but panics on error. It is meant for rule
// lists built once at startup.
func MustCompile(expr string) *Regexp {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Regexp) String() string {
	return p.expr
}

// NumGroups returns the number of capture groups in the expression.
func (p *Regexp) NumGroups() int {
	return p.find.NumSubexp()
}

func (p *Regexp) MatchSpan(text string, span Span) (*Match, error) {
	idx := p.whole.FindStringSubmatchIndex(span.In(text))
	if idx == nil {
		return nil, nil
	}

	groups := make([]Span, len(idx)/2-1)
	for i := range groups {
		s, e := idx[2*i+2], idx[2*i+3]
		if s < 0 || e < 0 {
			groups[i] = Absent
			continue
		}
		groups[i] = Span{Start: s, End: e}.Shift(span.Start)
	}
	return NewMatch(text, span, groups...), nil
}

func (p *Regexp) FindAll(text string, span Span) ([]Span, error) {
	locs := p.find.FindAllStringIndex(span.In(text), -1)
	spans := make([]Span, len(locs))
	for i, loc := range locs {
		spans[i] = Span{Start: loc[0], End: loc[1]}.Shift(span.Start)
	}
	return spans, nil
}

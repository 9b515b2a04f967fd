// Package parser implements recursive, rule-driven parsing of text.
//
// A Parser holds an ordered list of rules. To parse a span it tries the
// rules in order; the first rule whose pattern matches the whole span, and
// which neither vetoes nor rejects the match, produces the output. The
// rule's handler receives the match's capture groups as children, each of
// which is parsed recursively by the same Parser the first time the handler
// reads it.
//
// Precedence is rule order: the rule meant to bind loosest is listed first,
// so it splits the text before tighter operators see it. Associativity is
// quantifier greediness inside a rule's own pattern:
//
//	`\s*(.*)>(.*?)`   splits at the last '>', left-associative
//	`\s*(.*?)>(.*)`   splits at the first '>', right-associative
//
// Rejection ("this rule does not apply here, try the next one") is a false
// result from Handle or a nil from Transform, never an error. Errors are
// reserved for spans no rule can parse (*NoRuleMatchedError) and for
// delimiters that cannot be paired (*UnbalancedError).
//
// Parsing is plain recursion, bounded only by the nesting depth of the
// input. Parsers and rules are immutable once built and may be shared
// between goroutines.
package parser

import (
	"fmt"
	"slices"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/downstrip/pattern"
)

// Parser drives an ordered rule list over text.
type Parser[O any] struct {
	rules []Rule[O]
	log   commonlog.Logger
}

// New returns a parser trying rules in the given order.
func New[O any](rules ...Rule[O]) *Parser[O] {
	return &Parser[O]{
		rules: slices.Clone(rules),
		log:   commonlog.GetLogger("downstrip.parser"),
	}
}

// Rules returns a copy of the rule list.
func (p *Parser[O]) Rules() []Rule[O] {
	return slices.Clone(p.rules)
}

// Parse parses the whole of text.
func (p *Parser[O]) Parse(text string) (O, error) {
	return p.ParseSpan(text, pattern.Whole(text))
}

// ParseSpan parses span of text with the first rule that accepts it.
func (p *Parser[O]) ParseSpan(text string, span pattern.Span) (O, error) {
	var zero O
	if !span.Valid() || span.End > len(text) {
		return zero, fmt.Errorf("parse span %v: out of range for text of length %d", span, len(text))
	}

	trace := p.log.AllowLevel(commonlog.Debug)

	for i, r := range p.rules {
		m, err := r.Pattern().MatchSpan(text, span)
		if err != nil {
			return zero, fmt.Errorf("match rule %d against %v: %w", i, span, err)
		}
		if m == nil {
			continue
		}

		m = r.Transform(m)
		if m == nil {
			if trace {
				p.log.Debugf("rule %d (%v) vetoed '%s'", i, r, span.In(text))
			}
			continue
		}

		if trace {
			p.log.Debugf("rule %d (%v) matched against '%s'", i, r, span.In(text))
		}

		v, ok, err := r.Handle(m, p.children(r, m), p)
		if err != nil {
			return zero, err
		}
		if !ok {
			if trace {
				p.log.Debugf("rule %d (%v) rejected '%s'", i, r, span.In(text))
			}
			continue
		}
		return v, nil
	}

	return zero, &NoRuleMatchedError{Span: span, Excerpt: span.In(text)}
}

// children builds the lazy sequence for the groups of m that r descends
// into.
func (p *Parser[O]) children(r Rule[O], m *pattern.Match) *Children[O] {
	var spans []pattern.Span
	for g := 1; g <= m.NumGroups(); g++ {
		if r.Ignores(g) {
			continue
		}
		s, _ := m.GroupSpan(g)
		spans = append(spans, s)
	}

	text := m.Text()
	return Lazy(spans, func(s pattern.Span) (O, error) {
		return p.ParseSpan(text, s)
	})
}

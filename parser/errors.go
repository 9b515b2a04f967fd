package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/downstrip/pattern"
)

var (
	// ErrNoRuleMatched is matched by every *NoRuleMatchedError.
	ErrNoRuleMatched = errors.New("no rule matched")

	// ErrUnbalanced is matched by every *UnbalancedError.
	ErrUnbalanced = errors.New("unbalanced delimiters")
)

// NoRuleMatchedError reports a span that every rule in the list either
// failed to match or rejected.
type NoRuleMatchedError struct {
	Span    pattern.Span
	Excerpt string
}

func (e *NoRuleMatchedError) Error() string {
	return fmt.Sprintf("unable to parse a section: no rule matched the region %d to %d (%q)",
		e.Span.Start, e.Span.End, e.Excerpt)
}

func (e *NoRuleMatchedError) Is(target error) bool {
	return target == ErrNoRuleMatched
}

// UnbalancedError reports delimiters that cannot be paired.
type UnbalancedError struct {
	Opening  string
	Closing  string
	Openings int
	Closings int
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced expression: %d matches of opening %q, %d of closing %q",
		e.Openings, e.Opening, e.Closings, e.Closing)
}

func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalanced
}

// isParseFailure reports whether err is one of the structural failures a
// Group rule turns back into a rejection.
func isParseFailure(err error) bool {
	return errors.Is(err, ErrNoRuleMatched) || errors.Is(err, ErrUnbalanced)
}

package parser

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/downstrip/pattern"
)

var anything = pattern.MustCompile(`(?s).*`)

type groupRule[O any] struct {
	Rule[O]
	open  pattern.Pattern
	close pattern.Pattern
	log   commonlog.Logger
}

// GroupMatching replaces the capture groups of r's matches with the
// top-level groups delimited by open and close, as found by
// FindTopLevelGroups. The rest of r's contract is kept.
//
// The rule vetoes a span when no group is found, when the only group found
// is the span itself, or when the delimiters are unbalanced, leaving the
// span to the rules after it. A group child that fails to parse while the
// handler forces it rejects the match in the same way.
func GroupMatching[O any](r Rule[O], open, close pattern.Pattern) Rule[O] {
	return &groupRule[O]{
		Rule:  r,
		open:  open,
		close: close,
		log:   commonlog.GetLogger("downstrip.parser.group"),
	}
}

// GroupRule returns a rule accepting any span that contains top-level
// groups delimited by open and close; its children are those groups.
func GroupRule[O any](open, close pattern.Pattern, h ChildFunc[O]) Rule[O] {
	return GroupMatching(ChildRule(anything, h), open, close)
}

func (r *groupRule[O]) Transform(m *pattern.Match) *pattern.Match {
	whole := m.Span()
	groups, err := FindTopLevelGroups(m.Text(), whole, r.open, r.close)
	if err != nil {
		var unbalanced *UnbalancedError
		if errors.As(err, &unbalanced) {
			r.log.Debugf("%v: %s", unbalanced, m.String())
		} else {
			r.log.Warningf("locate groups in %q: %v", m.String(), err)
		}
		return nil
	}

	if len(groups) == 0 {
		return nil
	}
	// Matching the span as its own single group would recurse on the same
	// span forever.
	if len(groups) == 1 && groups[0] == whole {
		return nil
	}

	return r.Rule.Transform(m.WithGroups(groups))
}

func (r *groupRule[O]) Handle(m *pattern.Match, children *Children[O], p *Parser[O]) (O, bool, error) {
	v, ok, err := r.Rule.Handle(m, children, p)
	if err != nil && isParseFailure(err) {
		r.log.Debugf("group child failed, rejecting %q: %v", m.String(), err)
		var zero O
		return zero, false, nil
	}
	return v, ok, err
}

func (r *groupRule[O]) String() string {
	return fmt.Sprintf("group(%v, %s, %s)", r.Rule, r.open, r.close)
}

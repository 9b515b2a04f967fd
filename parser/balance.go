package parser

import (
	"fmt"

	"github.com/dhamidi/downstrip/pattern"
)

// FindTopLevelGroups locates the outermost delimited groups inside span.
//
// Reported spans include the delimiters: a group starts where its opening
// match starts and ends where its closing match ends. Groups come back
// ordered by start offset, never overlap and never contain one another.
// Nested groups are absorbed into the group enclosing them.
//
// When the number of opening and closing matches differs, or the closings
// cannot be paired with preceding openings, an *UnbalancedError is
// returned.
func FindTopLevelGroups(text string, span pattern.Span, open, close pattern.Pattern) ([]pattern.Span, error) {
	opens, err := open.FindAll(text, span)
	if err != nil {
		return nil, fmt.Errorf("find opening delimiters: %w", err)
	}
	closes, err := close.FindAll(text, span)
	if err != nil {
		return nil, fmt.Errorf("find closing delimiters: %w", err)
	}

	unbalanced := &UnbalancedError{
		Opening:  open.String(),
		Closing:  close.String(),
		Openings: len(opens),
		Closings: len(closes),
	}
	if len(opens) != len(closes) {
		return nil, unbalanced
	}

	openings := make([]int, len(opens))
	openEnds := make(map[int]int, len(opens))
	for i, s := range opens {
		openings[i] = s.Start
		openEnds[s.Start] = s.End
	}
	closings := make([]int, len(closes))
	for i, s := range closes {
		closings[i] = s.End
	}

	groups := PairGroups(openings, closings)
	for _, g := range groups {
		// A closing paired ahead of its opening delimiter.
		if g.End < openEnds[g.Start] {
			return nil, unbalanced
		}
	}
	return groups, nil
}

// PairGroups pairs ascending opening and closing positions into top-level
// groups. Both slices must have the same length.
//
// No stack is kept. The pairing relies on one property of well-formed
// input: every opening precedes its own closing, and an inner pair closes
// before the pair around it. With as many openings as closings consumed,
// the latest closing is the threshold: an unconsumed opening below it means
// the group is still open at that closing, so the opening is absorbed and
// the next closing becomes the threshold. The first threshold with no
// opening below it closes the group. Input violating the property can
// yield spans ending before their opening delimiter does.
func PairGroups(openings, closings []int) []pattern.Span {
	if len(openings) == 0 {
		return nil
	}

	var groups []pattern.Span
	oi, ci := 0, 0
	o := openings[oi]
	oi++
	for ci < len(closings) {
		start := o
		threshold := closings[ci]
		ci++

		for oi < len(openings) {
			o = openings[oi]
			oi++
			if o >= threshold {
				break
			}
			threshold = closings[ci]
			ci++
		}

		groups = append(groups, pattern.Span{Start: start, End: threshold})
	}

	return compactGroups(groups)
}

// compactGroups drops consecutive duplicates. They appear when a nested
// span coincides with the whole remaining span, as with empty groups at a
// single position.
func compactGroups(groups []pattern.Span) []pattern.Span {
	if len(groups) < 2 {
		return groups
	}
	out := groups[:1]
	for _, g := range groups[1:] {
		if g != out[len(out)-1] {
			out = append(out, g)
		}
	}
	return out
}

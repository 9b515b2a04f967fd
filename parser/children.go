package parser

import "github.com/dhamidi/downstrip/pattern"

// Children is a fixed-length sequence of sub-span parse results, each
// computed on first read and cached after that, error included. Reading the
// same index twice never parses twice.
//
// A Children value belongs to a single handler invocation and is not safe
// for concurrent use.
type Children[O any] struct {
	fetch func(pattern.Span) (O, error)
	slots []slot[O]
}

type slot[O any] struct {
	span  pattern.Span
	done  bool
	value O
	err   error
}

// Lazy returns a sequence with one slot per span. fetch computes a slot's
// value the first time it is read. Spans that are not Valid are absent:
// they read as the zero value and fetch is never called for them.
func Lazy[O any](spans []pattern.Span, fetch func(pattern.Span) (O, error)) *Children[O] {
	slots := make([]slot[O], len(spans))
	for i, s := range spans {
		slots[i].span = s
	}
	return &Children[O]{fetch: fetch, slots: slots}
}

// Len returns the number of slots.
func (c *Children[O]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.slots)
}

// Get returns the value of slot i, parsing it if this is the first read.
func (c *Children[O]) Get(i int) (O, error) {
	s := &c.slots[i]
	if !s.done {
		if s.span.Valid() {
			s.value, s.err = c.fetch(s.span)
		}
		s.done = true
	}
	return s.value, s.err
}

// Span returns the span slot i covers, pattern.Absent for absent slots.
func (c *Children[O]) Span(i int) pattern.Span {
	return c.slots[i].span
}

// Present reports whether slot i corresponds to a group that participated
// in the match.
func (c *Children[O]) Present(i int) bool {
	return c.slots[i].span.Valid()
}

// Evaluated reports whether slot i has been read.
func (c *Children[O]) Evaluated(i int) bool {
	return c.slots[i].done
}

// All reads every slot in order and stops at the first error.
func (c *Children[O]) All() ([]O, error) {
	values := make([]O, c.Len())
	for i := range values {
		v, err := c.Get(i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

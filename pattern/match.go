package pattern

// Match is the result of matching a pattern against a whole region.
// Group 0 is the region itself; groups 1..NumGroups are capture groups,
// any of which may be absent.
type Match struct {
	text   string
	groups []Span
}

// NewMatch builds a match over text. whole becomes group 0, groups become
// capture groups 1..len(groups).
func NewMatch(text string, whole Span, groups ...Span) *Match {
	all := make([]Span, 0, len(groups)+1)
	all = append(all, whole)
	all = append(all, groups...)
	return &Match{text: text, groups: all}
}

// Text returns the full source text the match refers into.
func (m *Match) Text() string {
	return m.text
}

// Span returns the span of the whole match.
func (m *Match) Span() Span {
	return m.groups[0]
}

// String returns the matched text.
func (m *Match) String() string {
	return m.groups[0].In(m.text)
}

// NumGroups returns the number of capture groups, not counting group 0.
func (m *Match) NumGroups() int {
	return len(m.groups) - 1
}

// GroupSpan returns the span of group i and whether it participated in the
// match.
func (m *Match) GroupSpan(i int) (Span, bool) {
	if i < 0 || i >= len(m.groups) {
		return Absent, false
	}
	s := m.groups[i]
	return s, s.Valid()
}

// Group returns the text of group i, or "" when it is absent.
func (m *Match) Group(i int) string {
	s, ok := m.GroupSpan(i)
	if !ok {
		return ""
	}
	return s.In(m.text)
}

// WithGroups returns a copy of m keeping the whole span but replacing every
// capture group with groups.
func (m *Match) WithGroups(groups []Span) *Match {
	return NewMatch(m.text, m.groups[0], groups...)
}

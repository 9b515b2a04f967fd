package pattern

import "fmt"

// Span is a half-open range of byte offsets into a source text.
type Span struct {
	Start int
	End   int
}

// Absent marks a capture group that did not participate in a match.
var Absent = Span{Start: -1, End: -1}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Valid reports whether s describes a real range.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Overlaps reports whether s and o share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Shift returns s moved right by n bytes.
func (s Span) Shift(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

// In returns the text covered by s.
func (s Span) In(text string) string {
	return text[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Whole returns the span covering all of text.
func Whole(text string) Span {
	return Span{Start: 0, End: len(text)}
}

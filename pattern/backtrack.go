package pattern

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultTimeout bounds a single backtracking match attempt.
const DefaultTimeout = 5 * time.Second

// Backtracking is a pattern backed by a backtracking engine. It accepts
// backreferences (`(['"])(.*)\1`), lookaround and atomic groups, none of
// which RE2 can express. Offsets reported by the engine are rune indices;
// they are converted to byte offsets before leaving this type.
type Backtracking struct {
	expr  string
	find  *regexp2.Regexp
	whole *regexp2.Regexp
}

// BacktrackingOption configures CompileBacktracking.
type BacktrackingOption func(*Backtracking)

// WithTimeout sets the per-attempt match timeout. Zero disables it.
func WithTimeout(d time.Duration) BacktrackingOption {
	return func(b *Backtracking) {
		if d <= 0 {
			d = regexp2.DefaultMatchTimeout
		}
		b.find.MatchTimeout = d
		b.whole.MatchTimeout = d
	}
}

// CompileBacktracking compiles expr for the backtracking engine.
func CompileBacktracking(expr string, opts ...BacktrackingOption) (*Backtracking, error) {
	find, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	whole, err := regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile anchored pattern %q: %w", expr, err)
	}
	b := &Backtracking{expr: expr, find: find, whole: whole}
	b.find.MatchTimeout = DefaultTimeout
	b.whole.MatchTimeout = DefaultTimeout
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// MustCompileBacktracking is like CompileBacktracking but panics on error.
func MustCompileBacktracking(expr string, opts ...BacktrackingOption) *Backtracking {
	p, err := CompileBacktracking(expr, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Backtracking) String() string {
	return p.expr
}

func (p *Backtracking) MatchSpan(text string, span Span) (*Match, error) {
	region := span.In(text)
	m, err := p.whole.FindRunesMatch([]rune(region))
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", p.expr, err)
	}
	if m == nil {
		return nil, nil
	}

	offsets := runeOffsets(region)
	all := m.Groups()
	groups := make([]Span, len(all)-1)
	for i, g := range all[1:] {
		if len(g.Captures) == 0 {
			groups[i] = Absent
			continue
		}
		groups[i] = Span{
			Start: offsets[g.Index],
			End:   offsets[g.Index+g.Length],
		}.Shift(span.Start)
	}
	return NewMatch(text, span, groups...), nil
}

func (p *Backtracking) FindAll(text string, span Span) ([]Span, error) {
	region := span.In(text)
	offsets := runeOffsets(region)

	var spans []Span
	m, err := p.find.FindRunesMatch([]rune(region))
	for ; m != nil && err == nil; m, err = p.find.FindNextMatch(m) {
		spans = append(spans, Span{
			Start: offsets[m.Index],
			End:   offsets[m.Index+m.Length],
		}.Shift(span.Start))
	}
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", p.expr, err)
	}
	return spans, nil
}

// runeOffsets maps rune index i of s to its byte offset. The extra final
// entry maps len([]rune(s)) to len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

package parser

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/downstrip/pattern"
)

func TestFindTopLevelGroups(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		close string
		want  []pattern.Span
	}{
		{"no groups", "ul > li", `\[`, `\]`, nil},
		{"single whole group", "<A, B>", `<`, `>`, []pattern.Span{{Start: 0, End: 6}}},
		{"single surrounded group", "private Map<String, String> aliases;", `<`, `>`, []pattern.Span{{Start: 11, End: 27}}},
		{"adjacent groups", "a[href][target]", `\[`, `\]`, []pattern.Span{{Start: 1, End: 7}, {Start: 7, End: 15}}},
		{
			"lengthy delimiters",
			"Lorem <b>ipsum</b> <em>dolor</em> <span>sit amet</span>",
			`<\w+>`, `</\w+>`,
			[]pattern.Span{{Start: 6, End: 18}, {Start: 19, End: 33}, {Start: 34, End: 55}},
		},
		{
			"nested groups are absorbed",
			"a + (b - (c + d) - e) - (f + (g - h) + i) + j",
			`\(`, `\)`,
			[]pattern.Span{{Start: 4, End: 21}, {Start: 24, End: 41}},
		},
		{"deep nesting", "((()))", `\(`, `\)`, []pattern.Span{{Start: 0, End: 6}}},
		{"nested siblings", "(()())x()", `\(`, `\)`, []pattern.Span{{Start: 0, End: 6}, {Start: 7, End: 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindTopLevelGroups(tt.input, pattern.Whole(tt.input),
				pattern.MustCompile(tt.open), pattern.MustCompile(tt.close))
			if err != nil {
				t.Fatalf("FindTopLevelGroups: %v", err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindTopLevelGroups_Region(t *testing.T) {
	input := "[x] a[b][c]"
	got, err := FindTopLevelGroups(input, pattern.Span{Start: 5, End: len(input)},
		pattern.MustCompile(`\[`), pattern.MustCompile(`\]`))
	if err != nil {
		t.Fatalf("FindTopLevelGroups: %v", err)
	}
	want := []pattern.Span{{Start: 5, End: 8}, {Start: 8, End: 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFindTopLevelGroups_Unbalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		close string
	}{
		{"mismatched counts", `if (a > ((Map<String, Integer>) b.get("b")))`, `<`, `>`},
		{"missing closing", "(a", `\(`, `\)`},
		{"closing before opening", "a)b(c", `\(`, `\)`},
		{"touching reversed", ")(", `\(`, `\)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindTopLevelGroups(tt.input, pattern.Whole(tt.input),
				pattern.MustCompile(tt.open), pattern.MustCompile(tt.close))
			if !errors.Is(err, ErrUnbalanced) {
				t.Fatalf("got %v, want ErrUnbalanced", err)
			}
			var unbalanced *UnbalancedError
			if !errors.As(err, &unbalanced) {
				t.Fatalf("got %T, want *UnbalancedError", err)
			}
			if unbalanced.Opening != tt.open || unbalanced.Closing != tt.close {
				t.Errorf("delimiters: got %q/%q, want %q/%q",
					unbalanced.Opening, unbalanced.Closing, tt.open, tt.close)
			}
		})
	}
}

func TestPairGroups(t *testing.T) {
	tests := []struct {
		name     string
		openings []int
		closings []int
		want     []pattern.Span
	}{
		{"empty", nil, nil, nil},
		{"semi-detached groups", []int{0, 2}, []int{2, 4}, []pattern.Span{{Start: 0, End: 2}, {Start: 2, End: 4}}},
		{"empty nested groups", []int{2, 2}, []int{2, 2}, []pattern.Span{{Start: 2, End: 2}}},
		{"nested", []int{0, 1, 2}, []int{3, 4, 5}, []pattern.Span{{Start: 0, End: 5}}},
		{"nested then sibling", []int{0, 1, 5}, []int{3, 4, 6}, []pattern.Span{{Start: 0, End: 4}, {Start: 5, End: 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PairGroups(tt.openings, tt.closings)
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// randomNested returns a well-nested string of parentheses and letters.
func randomNested(r *rand.Rand, depth int) string {
	var b strings.Builder
	n := r.Intn(4)
	for i := 0; i < n; i++ {
		if depth > 0 && r.Intn(2) == 0 {
			b.WriteByte('(')
			b.WriteString(randomNested(r, depth-1))
			b.WriteByte(')')
		} else {
			b.WriteByte(byte('a' + r.Intn(3)))
		}
	}
	return b.String()
}

func TestFindTopLevelGroups_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	open, close := pattern.MustCompile(`\(`), pattern.MustCompile(`\)`)

	for i := 0; i < 500; i++ {
		input := randomNested(r, 4)
		groups, err := FindTopLevelGroups(input, pattern.Whole(input), open, close)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}

		for j, g := range groups {
			text := g.In(input)
			if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
				t.Fatalf("%q: group %v = %q does not include its delimiters", input, g, text)
			}
			if depthOK := balanced(text); !depthOK {
				t.Fatalf("%q: group %q is not balanced", input, text)
			}
			if j == 0 {
				continue
			}
			prev := groups[j-1]
			if prev.Start >= g.Start {
				t.Fatalf("%q: groups %v and %v out of order", input, prev, g)
			}
			if prev.Overlaps(g) || prev.Contains(g) || g.Contains(prev) {
				t.Fatalf("%q: groups %v and %v overlap", input, prev, g)
			}
		}

		// Everything outside the groups is at depth zero.
		outside := input
		for j := len(groups) - 1; j >= 0; j-- {
			outside = outside[:groups[j].Start] + outside[groups[j].End:]
		}
		if strings.ContainsAny(outside, "()") {
			t.Fatalf("%q: delimiters left outside groups: %q", input, outside)
		}
	}
}

func balanced(s string) bool {
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i != len(s)-1 {
			return false
		}
	}
	return depth == 0
}

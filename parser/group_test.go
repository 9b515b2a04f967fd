package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/downstrip/pattern"
)

func text(m *pattern.Match) (string, bool) {
	return m.String(), true
}

func TestGroupRule_MatchesOnlyTopLevelGroups(t *testing.T) {
	const input = "a + (b - (c + d) - e) - (f + (g - h) + i) + j"

	called := false
	p := New(
		GroupRule(re(`\(`), re(`\)`), func(m *pattern.Match, children *Children[string]) (string, bool, error) {
			if children.Len() != 2 {
				t.Fatalf("got %d children, want 2", children.Len())
			}
			all, err := children.All()
			if err != nil {
				return "", false, err
			}
			if all[0] != "(b - (c + d) - e)" || all[1] != "(f + (g - h) + i)" {
				t.Errorf("got children %q", all)
			}
			called = true
			return "groups", true, nil
		}),
		MatchRule(re(`(?s).*`), text),
	)

	expectParse(t, p, input, "groups")
	if !called {
		t.Error("group handler was not called")
	}
}

func TestGroupRule_Vetoes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		close string
	}{
		{"no groups found", "int a = 1", `<`, `>`},
		{"unbalanced", `if (a > ((Map<String, Integer>) b.get("b")))`, `<`, `>`},
		{"single group is the whole span", "{1, 2}", `\{`, `\}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := GroupRule(re(tt.open), re(tt.close), func(*pattern.Match, *Children[string]) (string, bool, error) {
				t.Error("handler called for a vetoed span")
				return "", true, nil
			})
			m, err := r.Pattern().MatchSpan(tt.input, pattern.Whole(tt.input))
			if err != nil || m == nil {
				t.Fatalf("pattern did not match: %v", err)
			}
			if got := r.Transform(m); got != nil {
				t.Errorf("got groups %d, want a veto", got.NumGroups())
			}

			p := New(r, MatchRule(re(`(?s).*`), constant("fallback")))
			expectParse(t, p, tt.input, "fallback")
		})
	}
}

func TestGroupRule_SynthesizesGroups(t *testing.T) {
	r := GroupRule(re(`\[`), re(`\]`), func(*pattern.Match, *Children[string]) (string, bool, error) {
		return "", true, nil
	})

	input := "a[href][target]"
	m, _ := r.Pattern().MatchSpan(input, pattern.Whole(input))
	g := r.Transform(m)
	if g == nil {
		t.Fatal("got a veto")
	}
	if g.NumGroups() != 2 {
		t.Fatalf("got %d groups, want 2", g.NumGroups())
	}
	if g.Group(1) != "[href]" || g.Group(2) != "[target]" {
		t.Errorf("got groups %q, %q", g.Group(1), g.Group(2))
	}
	if g.Span() != pattern.Whole(input) {
		t.Errorf("whole span changed to %v", g.Span())
	}
}

func TestGroupMatching_ChildFailureRejects(t *testing.T) {
	p := New(
		GroupRule(re(`\(`), re(`\)`), func(m *pattern.Match, children *Children[string]) (string, bool, error) {
			all, err := children.All()
			if err != nil {
				return "", false, err
			}
			return strings.Join(all, "+"), true, nil
		}),
		MatchRule(re(`\(\w+\)`), text),
		MatchRule(re(`.*`), constant("raw")),
	)

	expectParse(t, p, "(a)(b)", "(a)+(b)")
	// "(!)" is parsed by the catch-all, so the group rule succeeds as well.
	expectParse(t, p, "(a)(!)", "(a)+raw")

	strict := New(
		GroupRule(re(`\(`), re(`\)`), func(m *pattern.Match, children *Children[string]) (string, bool, error) {
			all, err := children.All()
			if err != nil {
				return "", false, err
			}
			return strings.Join(all, "+"), true, nil
		}),
		MatchRule(re(`\(\w+\)`), text),
		MatchRule(re(`.*x`), constant("opaque")),
	)
	// "(!!)" fails inside the group rule, which then steps aside for the
	// last rule.
	expectParse(t, strict, "(a)(!!)x", "opaque")
}

func TestGroupMatching_KeepsInnerContract(t *testing.T) {
	inner := Mask(ChildRule(re(`(?s).*`), func(m *pattern.Match, children *Children[string]) (string, bool, error) {
		if children.Len() != 1 {
			t.Fatalf("got %d children, want 1", children.Len())
		}
		v, err := children.Get(0)
		return v, err == nil, err
	}), 1)
	p := New(
		GroupMatching(inner, re(`\{`), re(`\}`)),
		MatchRule(re(`\{\w*\}`), text),
	)

	// The first group is masked; only the second is parsed.
	expectParse(t, p, "{!!}{b}", "{b}")
}

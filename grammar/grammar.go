// Package grammar builds parsers from declarative grammar files.
//
// A grammar file lists rules in priority order. Each rule names a pattern,
// optional decorations and an optional emit template; the resulting parser
// produces a tree of *Node values.
//
//	engine: re2
//	rules:
//	  - name: gt
//	    pattern: '\s*(.*?)>(.*)'
//	    emit: '({{.Child 0}} > {{.Child 1}})'
//	  - name: attrs
//	    group: {open: '\[', close: '\]'}
//	    emit: '{{.Join ","}}'
//	  - name: atom
//	    pattern: '\s*[A-Z]\s*'
//	    shallow: true
//
// Emit templates use text/template with the match as dot: .Text is the
// matched text, .Group n a capture group, .Child n the value of child n and
// .Join sep the values of all children.
package grammar

import (
	"fmt"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/dhamidi/downstrip/parser"
	"github.com/dhamidi/downstrip/pattern"
)

// Engine selects the pattern engine rules are compiled with.
type Engine string

const (
	EngineRE2          Engine = "re2"
	EngineBacktracking Engine = "backtracking"
)

// File is the decoded form of a grammar file.
type File struct {
	Engine  Engine     `yaml:"engine" toml:"engine"`
	Timeout string     `yaml:"timeout" toml:"timeout"`
	Rules   []RuleSpec `yaml:"rules" toml:"rules"`
}

// RuleSpec describes a single rule.
type RuleSpec struct {
	Name    string     `yaml:"name" toml:"name"`
	Pattern string     `yaml:"pattern" toml:"pattern"`
	Emit    string     `yaml:"emit" toml:"emit"`
	Shallow bool       `yaml:"shallow" toml:"shallow"`
	Mask    []int      `yaml:"mask" toml:"mask"`
	Veto    string     `yaml:"veto" toml:"veto"`
	Group   *GroupSpec `yaml:"group" toml:"group"`
}

// GroupSpec holds the delimiters of a group-matching rule.
type GroupSpec struct {
	Open  string `yaml:"open" toml:"open"`
	Close string `yaml:"close" toml:"close"`
}

// Grammar is a compiled grammar file.
type Grammar struct {
	file   File
	parser *parser.Parser[*Node]
}

// Compile validates f and builds its parser.
func Compile(f File) (*Grammar, error) {
	if f.Engine == "" {
		f.Engine = EngineRE2
	}
	f.Rules = slices.Clone(f.Rules)

	compile, err := compiler(f)
	if err != nil {
		return nil, err
	}

	rules := make([]parser.Rule[*Node], len(f.Rules))
	for i := range f.Rules {
		spec := &f.Rules[i]
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("rule%d", i)
		}
		r, err := buildRule(*spec, compile)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, spec.Name, err)
		}
		rules[i] = r
	}

	return &Grammar{file: f, parser: parser.New(rules...)}, nil
}

// File returns the grammar's decoded form with defaults filled in.
func (g *Grammar) File() File {
	return g.file
}

// Parser returns the parser the grammar describes.
func (g *Grammar) Parser() *parser.Parser[*Node] {
	return g.parser
}

// Parse parses text with the grammar.
func (g *Grammar) Parse(text string) (*Node, error) {
	return g.parser.Parse(text)
}

type compileFunc func(expr string) (pattern.Pattern, error)

func compiler(f File) (compileFunc, error) {
	switch f.Engine {
	case EngineRE2:
		if f.Timeout != "" {
			return nil, fmt.Errorf("timeout is only supported by the %s engine", EngineBacktracking)
		}
		return func(expr string) (pattern.Pattern, error) {
			return pattern.Compile(expr)
		}, nil
	case EngineBacktracking:
		var opts []pattern.BacktrackingOption
		if f.Timeout != "" {
			d, err := time.ParseDuration(f.Timeout)
			if err != nil {
				return nil, fmt.Errorf("parse timeout: %w", err)
			}
			opts = append(opts, pattern.WithTimeout(d))
		}
		return func(expr string) (pattern.Pattern, error) {
			return pattern.CompileBacktracking(expr, opts...)
		}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (expected %s or %s)", f.Engine, EngineRE2, EngineBacktracking)
	}
}

func buildRule(spec RuleSpec, compile compileFunc) (parser.Rule[*Node], error) {
	expr := spec.Pattern
	if expr == "" {
		if spec.Group == nil {
			return nil, fmt.Errorf("pattern is required unless group is set")
		}
		expr = `(?s).*`
	}
	pat, err := compile(expr)
	if err != nil {
		return nil, err
	}

	var emit *template.Template
	if spec.Emit != "" {
		emit, err = template.New(spec.Name).Option("missingkey=error").Parse(spec.Emit)
		if err != nil {
			return nil, fmt.Errorf("parse emit template: %w", err)
		}
	}

	r := parser.NewRule(pat, nodeHandler(spec.Name, emit))

	if spec.Veto != "" {
		veto, err := compile(spec.Veto)
		if err != nil {
			return nil, fmt.Errorf("veto: %w", err)
		}
		r = parser.Early(r, vetoMatching(veto))
	}

	for _, g := range spec.Mask {
		if g < 1 {
			return nil, fmt.Errorf("mask: group %d out of range (groups start at 1)", g)
		}
	}
	if len(spec.Mask) > 0 {
		r = parser.Mask(r, spec.Mask...)
	}

	if spec.Shallow {
		r = parser.Shallow(r)
	}

	if spec.Group != nil {
		if spec.Group.Open == "" || spec.Group.Close == "" {
			return nil, fmt.Errorf("group needs both open and close delimiters")
		}
		open, err := compile(spec.Group.Open)
		if err != nil {
			return nil, fmt.Errorf("group open: %w", err)
		}
		closing, err := compile(spec.Group.Close)
		if err != nil {
			return nil, fmt.Errorf("group close: %w", err)
		}
		r = parser.GroupMatching(r, open, closing)
	}

	return r, nil
}

// vetoMatching rejects matches whose text contains a match of veto.
func vetoMatching(veto pattern.Pattern) func(*pattern.Match) *pattern.Match {
	return func(m *pattern.Match) *pattern.Match {
		found, err := veto.FindAll(m.Text(), m.Span())
		if err != nil || len(found) > 0 {
			return nil
		}
		return m
	}
}

// nodeHandler parses every child and renders the node's value.
func nodeHandler(name string, emit *template.Template) parser.Handler[*Node] {
	return func(m *pattern.Match, children *parser.Children[*Node], _ *parser.Parser[*Node]) (*Node, bool, error) {
		all, err := children.All()
		if err != nil {
			return nil, false, err
		}

		n := &Node{
			Rule:  name,
			Span:  m.Span(),
			Text:  m.String(),
			Value: m.String(),
		}
		for _, c := range all {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}

		if emit != nil {
			var b strings.Builder
			if err := emit.Execute(&b, emitData{match: m, children: all}); err != nil {
				return nil, false, fmt.Errorf("rule %s: render emit: %w", name, err)
			}
			n.Value = b.String()
		}
		return n, true, nil
	}
}

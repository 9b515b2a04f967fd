package lsp

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/downstrip/grammar"
	"github.com/dhamidi/downstrip/parser"
	"github.com/dhamidi/downstrip/pattern"
)

const source = "downstrip"

// Diagnose parses text with g. A span no rule could parse is reported at
// that span; any other failure is reported at the start of the document.
// A successful parse yields an empty, non-nil slice.
func Diagnose(g *grammar.Grammar, text string) []protocol.Diagnostic {
	_, err := g.Parse(text)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	span := pattern.Span{Start: 0, End: 0}
	var unmatched *parser.NoRuleMatchedError
	if errors.As(err, &unmatched) {
		span = unmatched.Span
	}

	severity := protocol.DiagnosticSeverityError
	src := source
	return []protocol.Diagnostic{{
		Range:    spanRange(text, span),
		Severity: &severity,
		Source:   &src,
		Message:  err.Error(),
	}}
}

func spanRange(text string, span pattern.Span) protocol.Range {
	return protocol.Range{
		Start: position(text, span.Start),
		End:   position(text, span.End),
	}
}

// position converts a byte offset into a zero-based line and UTF-16
// character position. Offsets past the end are clamped.
func position(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, char protocol.UInteger
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > offset {
			break
		}
		if r == '\n' {
			line++
			char = 0
		} else {
			char += protocol.UInteger(utf16.RuneLen(r))
		}
		i += size
	}
	return protocol.Position{Line: line, Character: char}
}

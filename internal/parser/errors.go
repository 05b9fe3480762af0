package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/lexer"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

// Error is a failed parse. It unwraps both to the positioned
// *diag.SourceCodeError and to the engine error (grammar.ErrNoMatch,
// grammar.ErrDepthExceeded or grammar.ErrBrokenGrammar).
type Error struct {
	*diag.SourceCodeError
	Cause error
}

func (e *Error) Unwrap() []error {
	return []error{e.SourceCodeError, e.Cause}
}

// Describe turns an engine error into a diagnostic positioned in file.
func Describe(file *source.File, err error) diag.Diagnostic {
	var (
		se *grammar.SyntaxError
		de *grammar.DepthError
	)
	switch {
	case errors.As(err, &se):
		at := offendingSpan(file, se.Pos)
		if se.Trailing() {
			return diag.NewError(diag.SynTrailingInput, at,
				"unexpected "+describeAt(file, at)+" after the end of the program")
		}
		return diag.NewError(diag.SynUnexpectedToken, at,
			fmt.Sprintf("unexpected %s, expected %s", describeAt(file, at), expectedList(se.Expected)))
	case errors.As(err, &de):
		return diag.NewError(diag.IntRecursionLimit, emptyAt(file, de.Pos), de.Error())
	default:
		return diag.NewError(diag.IntBrokenGrammar, emptyAt(file, 0), err.Error())
	}
}

// offendingSpan covers the token that starts at pos, or one code point when
// nothing lexes there.
func offendingSpan(file *source.File, pos int) source.Span {
	at := emptyAt(file, pos)
	if pos >= len(file.Content) {
		return at
	}
	if n, err := lexer.Next(file.Content, pos, token.GoalDiv); err == nil && n.End > at.Start {
		at.End = n.End
		return at
	}
	_, size := utf8.DecodeRune(file.Content[pos:])
	if n, err := safecast.Conv[uint32](size); err == nil {
		at.End = min(at.Start+n, file.Len())
	}
	return at
}

func emptyAt(file *source.File, pos int) source.Span {
	off, err := safecast.Conv[uint32](min(max(pos, 0), len(file.Content)))
	if err != nil {
		off = file.Len()
	}
	return source.Span{File: file.ID, Start: off, End: off}
}

func describeAt(file *source.File, at source.Span) string {
	if at.Empty() {
		return "end of input"
	}
	text := file.Text(at)
	switch {
	case text == "\n", text == "\r", text == "\r\n":
		return "line terminator"
	case strings.HasPrefix(text, "//"), strings.HasPrefix(text, "/*"):
		return "comment"
	}
	const limit = 24
	if len(text) > limit {
		text = text[:limit] + "..."
	}
	return strconv.Quote(text)
}

func expectedList(rules []ast.Rule) string {
	if len(rules) == 0 {
		return "nothing"
	}
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		if r == ast.EOI {
			names = append(names, "end of input")
			continue
		}
		if text, ok := token.Text(r); ok {
			names = append(names, strconv.Quote(text))
			continue
		}
		names = append(names, r.String())
	}
	if len(names) == 1 {
		return names[0]
	}
	return "one of " + strings.Join(names, ", ")
}

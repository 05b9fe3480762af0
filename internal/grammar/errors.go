package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

var (
	// ErrNoMatch means the input is not derivable from the requested rule.
	ErrNoMatch = errors.New("no match")
	// ErrDepthExceeded means the nesting guard tripped before a decision was reached.
	ErrDepthExceeded = errors.New("rule nesting depth exceeded")
	// ErrBrokenGrammar means the rule table itself is inconsistent.
	ErrBrokenGrammar = errors.New("broken grammar")
)

// SyntaxError describes a failed match: the furthest byte offset any named
// rule was attempted at, and the rules that were expected there.
type SyntaxError struct {
	Pos      int
	Expected []ast.Rule
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("no match at offset %d", e.Pos)
	}
	names := make([]string, len(e.Expected))
	for i, r := range e.Expected {
		names[i] = r.String()
	}
	return fmt.Sprintf("no match at offset %d, expected %s", e.Pos, strings.Join(names, " | "))
}

func (e *SyntaxError) Unwrap() error { return ErrNoMatch }

// Trailing reports whether the only thing missing was the end of input,
// i.e. a prefix matched but something follows it.
func (e *SyntaxError) Trailing() bool {
	return len(e.Expected) == 1 && e.Expected[0] == ast.EOI
}

// DepthError is returned when rule nesting exceeds the configured limit.
type DepthError struct {
	Pos   int
	Limit int
	Rule  ast.Rule
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("rule nesting exceeds %d at offset %d (entering %s)", e.Limit, e.Pos, e.Rule)
}

func (e *DepthError) Unwrap() error { return ErrDepthExceeded }

// GrammarError reports an inconsistent rule table.
type GrammarError struct {
	Grammar string
	Rule    ast.Rule
	Params  ast.Params
	Reason  string
}

func (e *GrammarError) Error() string {
	if e.Params != 0 {
		return fmt.Sprintf("grammar %s: rule %s%s: %s", e.Grammar, e.Rule, e.Params, e.Reason)
	}
	return fmt.Sprintf("grammar %s: rule %s: %s", e.Grammar, e.Rule, e.Reason)
}

func (e *GrammarError) Unwrap() error { return ErrBrokenGrammar }

// IsNoMatch reports whether err means "the input is invalid".
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsInternal reports whether err means "the parser itself failed":
// a nesting limit or a broken rule table.
func IsInternal(err error) bool {
	return errors.Is(err, ErrDepthExceeded) || errors.Is(err, ErrBrokenGrammar)
}

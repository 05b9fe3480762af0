package lexer

import (
	"fmt"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

// Next recognises exactly one input element of src starting at pos under
// goal. The returned node is the InputElement* node for the goal; its
// single-child chain names the token (see token.Classify). A position where
// nothing matches yields a *grammar.SyntaxError.
func Next(src []byte, pos int, goal token.Goal) (ast.Node, error) {
	return NextWith(src, pos, goal, grammar.Options{})
}

// NextWith is Next with explicit engine options.
func NextWith(src []byte, pos int, goal token.Goal, opts grammar.Options) (ast.Node, error) {
	r := goal.Rule()
	if r == ast.NoRule {
		return ast.Node{}, fmt.Errorf("lexer: unknown goal %v", goal)
	}
	return lexical.Match(r, src, pos, opts)
}

// Recognize matches the lexical production r against the whole of src.
// Trailing input makes it fail.
func Recognize(r ast.Rule, src []byte) (ast.Node, error) {
	return lexical.Parse(r, src, grammar.Options{})
}

// Rule returns a matcher for lexical production r, for use inside other
// grammars. It panics when r is not a lexical rule; call it while building
// a grammar, not while parsing.
func Rule(r ast.Rule) grammar.Matcher {
	m, ok := lexical.Lookup(r)
	if !ok {
		panic(&grammar.GrammarError{Grammar: lexical.Name(), Rule: r, Reason: "not a lexical rule"})
	}
	return m
}

// Keyword returns a matcher for the reserved word r that, like ReservedWord,
// refuses to match the start of a longer name such as "debuggerx".
func Keyword(r ast.Rule) grammar.Matcher {
	if !r.IsKeyword() {
		panic(&grammar.GrammarError{Grammar: lexical.Name(), Rule: r, Reason: "not a reserved word"})
	}
	return grammar.Atomic(grammar.Seq(Rule(r), grammar.NotAhead(identifierPart)))
}

// IsLexical reports whether r is defined by the lexical grammar.
func IsLexical(r ast.Rule) bool {
	return lexical.Has(r)
}

// Validate re-checks the lexical grammar. The package initialiser already
// panics on a broken table; this is for hosts that want an explicit check.
func Validate() error {
	return lexical.Validate()
}

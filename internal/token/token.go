package token

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

// Token is one recognition step of the lexer.
type Token struct {
	Kind Kind
	// Rule is the most specific production: the keyword or punctuator
	// terminal, or the category rule for names, comments and space.
	Rule ast.Rule
	Span source.Span
	Text string
	// Goal the token was recognised under.
	Goal Goal
}

// IsTrivia reports whether the token is white space, a line terminator or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// Is reports whether the token was produced by rule r.
func (t Token) Is(r ast.Rule) bool { return t.Rule == r }

// IsKeyword reports whether the token is the given reserved word.
func (t Token) IsKeyword(r ast.Rule) bool { return t.Kind == ReservedWord && t.Rule == r }

// IsPunct reports whether the token is the given punctuator.
func (t Token) IsPunct(r ast.Rule) bool { return t.Kind == Punctuator && t.Rule == r }

// Classify derives the token kind and rule from an InputElement node, or
// from any node on its single-child chain.
func Classify(n *ast.Node) (Kind, ast.Rule) {
	leaf := n.Leaf().Rule
	for _, r := range n.Path() {
		switch r {
		case ast.WhiteSpace:
			return WhiteSpace, r
		case ast.LineTerminator, ast.LineTerminatorSequence:
			return LineTerminator, r
		case ast.MultiLineComment:
			return MultiLineComment, r
		case ast.SingleLineComment:
			return SingleLineComment, r
		case ast.HashbangComment:
			return HashbangComment, r
		case ast.ReservedWord:
			return ReservedWord, leaf
		case ast.IdentifierName:
			return IdentifierName, r
		case ast.PrivateIdentifier:
			return PrivateIdentifier, r
		case ast.Punctuator, ast.OptionalChainingPunctuator, ast.OtherPunctuator,
			ast.DivPunctuator, ast.RightBracePunctuator:
			return Punctuator, leaf
		case ast.NumericLiteral, ast.DecimalDigit:
			return NumericLiteral, ast.NumericLiteral
		}
		if r.IsKeyword() {
			return ReservedWord, r
		}
		if r.IsPunctuatorTerminal() {
			return Punctuator, r
		}
	}
	return Invalid, leaf
}

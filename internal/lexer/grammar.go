package lexer

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	g "github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

// lexical is the shared, read-only lexical grammar.
var lexical = buildLexical()

var (
	hexDigit      = g.Char(isHexDigit)
	unicodeEscape = g.Seq(g.Lit(`\u`), g.Choice(
		g.Seq(hexDigit, hexDigit, hexDigit, hexDigit),
		g.Seq(g.Lit("{"), g.Plus(hexDigit), g.Lit("}")),
	))
	identifierStart = g.Choice(g.Char(isIdentifierStartChar), unicodeEscape)
	identifierPart  = g.Choice(g.Char(isIdentifierPartChar), unicodeEscape)
)

func buildLexical() *g.Grammar {
	lx := g.New("lexical")
	ref := lx.Ref

	lx.Define(ast.WhiteSpace, g.Char(isWhiteSpace))
	lx.Define(ast.LineTerminator, g.Char(isLineTerminator))
	// <CR><LF> стоит последним: одиночный <CR> защищён просмотром вперёд
	lx.Define(ast.LineTerminatorSequence, g.Choice(
		g.Lit("\n"),
		g.Seq(g.Lit("\r"), g.NotAhead(g.Lit("\n"))),
		g.Lit("\u2028"),
		g.Lit("\u2029"),
		g.Lit("\r\n"),
	))

	notLineTerminator := g.Char(func(r rune) bool { return !isLineTerminator(r) })
	lx.Define(ast.Comment, g.Choice(ref(ast.MultiLineComment), ref(ast.SingleLineComment)))
	lx.Define(ast.MultiLineComment, g.Seq(
		g.Lit("/*"),
		g.Star(g.Seq(g.NotAhead(g.Lit("*/")), g.Any)),
		g.Lit("*/"),
	))
	lx.Define(ast.SingleLineComment, g.Seq(g.Lit("//"), g.Star(notLineTerminator)))
	lx.Define(ast.HashbangComment, g.Seq(g.Lit("#!"), g.Star(notLineTerminator)))

	lx.Define(ast.IdentifierName, g.Seq(identifierStart, g.Star(identifierPart)))
	lx.Define(ast.NumberSign, g.Lit("#"))
	lx.Define(ast.PrivateIdentifier, g.Seq(ref(ast.NumberSign), ref(ast.IdentifierName)))

	words := token.ReservedWords()
	wordAlts := make([]g.Matcher, 0, len(words))
	for _, w := range words {
		lx.Define(w.Rule, g.Lit(w.Text))
		wordAlts = append(wordAlts, ref(w.Rule))
	}
	// instanceofx и if_ остаются идентификаторами
	lx.Define(ast.ReservedWord, g.Seq(g.Choice(wordAlts...), g.NotAhead(identifierPart)))

	lx.Define(ast.Punctuator, g.Choice(ref(ast.OptionalChainingPunctuator), ref(ast.OtherPunctuator)))
	lx.Define(ast.OptionalChainingPunctuator, g.Seq(g.Lit("?."), g.NotAhead(g.Char(isDecimalDigit))))
	lx.Define(ast.OtherPunctuator, g.Choice(terminals(lx, token.OtherPunctuators())...))
	lx.Define(ast.DivPunctuator, g.Choice(terminals(lx, token.DivPunctuators())...))
	lx.Define(ast.ClosingBrace, g.Lit("}"))
	lx.Define(ast.RightBracePunctuator, ref(ast.ClosingBrace))

	lx.Define(ast.DecimalDigit, g.Char(isDecimalDigit))
	lx.Define(ast.NumericLiteral, ref(ast.DecimalDigit))

	lx.Define(ast.CommonToken, g.Choice(
		ref(ast.IdentifierName),
		ref(ast.PrivateIdentifier),
		ref(ast.Punctuator),
		ref(ast.NumericLiteral),
	))

	shared := func(extra ...g.Matcher) g.Matcher {
		alts := []g.Matcher{ref(ast.WhiteSpace), ref(ast.LineTerminator), ref(ast.Comment)}
		alts = append(alts, extra...)
		return g.Choice(alts...)
	}
	lx.Define(ast.InputElementDiv, shared(
		ref(ast.ReservedWord), ref(ast.CommonToken),
		ref(ast.DivPunctuator), ref(ast.RightBracePunctuator),
	))
	lx.Define(ast.InputElementRegExp, shared(
		ref(ast.ReservedWord), ref(ast.CommonToken),
		ref(ast.RightBracePunctuator),
	))
	lx.Define(ast.InputElementRegExpOrTemplateTail, shared(
		ref(ast.ReservedWord), ref(ast.CommonToken),
	))
	lx.Define(ast.InputElementTemplateTail, shared(
		ref(ast.ReservedWord), ref(ast.CommonToken),
		ref(ast.DivPunctuator),
	))
	lx.Define(ast.InputElementHashbangOrRegExp, shared(
		ref(ast.HashbangComment),
		ref(ast.ReservedWord), ref(ast.CommonToken),
	))

	return lx.MustValidate()
}

// terminals defines one rule per fixed text and returns references in table order.
func terminals(lx *g.Grammar, table []token.Terminal) []g.Matcher {
	out := make([]g.Matcher, 0, len(table))
	for _, t := range table {
		lx.Define(t.Rule, g.Lit(t.Text))
		out = append(out, lx.Ref(t.Rule))
	}
	return out
}

package token

import "github.com/arhadthedev/embedded-ecmascript/internal/ast"

// Terminal pairs a fixed source text with the rule that names it.
type Terminal struct {
	Text string
	Rule ast.Rule
}

// reservedWords is tried in order, so a word must precede every word it is
// a prefix of (instanceof before in).
var reservedWords = []Terminal{
	{"await", ast.KwAwait},
	{"break", ast.KwBreak},
	{"case", ast.KwCase},
	{"catch", ast.KwCatch},
	{"class", ast.KwClass},
	{"const", ast.KwConst},
	{"continue", ast.KwContinue},
	{"debugger", ast.KwDebugger},
	{"default", ast.KwDefault},
	{"delete", ast.KwDelete},
	{"do", ast.KwDo},
	{"else", ast.KwElse},
	{"enum", ast.KwEnum},
	{"export", ast.KwExport},
	{"extends", ast.KwExtends},
	{"false", ast.KwFalse},
	{"finally", ast.KwFinally},
	{"for", ast.KwFor},
	{"function", ast.KwFunction},
	{"if", ast.KwIf},
	{"import", ast.KwImport},
	{"instanceof", ast.KwInstanceof},
	{"in", ast.KwIn},
	{"new", ast.KwNew},
	{"null", ast.KwNull},
	{"return", ast.KwReturn},
	{"super", ast.KwSuper},
	{"switch", ast.KwSwitch},
	{"this", ast.KwThis},
	{"throw", ast.KwThrow},
	{"true", ast.KwTrue},
	{"try", ast.KwTry},
	{"typeof", ast.KwTypeof},
	{"var", ast.KwVar},
	{"void", ast.KwVoid},
	{"while", ast.KwWhile},
	{"with", ast.KwWith},
	{"yield", ast.KwYield},
}

// otherPunctuators is ordered longest first: no entry may be shadowed by an
// earlier entry that is its prefix.
var otherPunctuators = []Terminal{
	{">>>=", ast.UnsignedRightShiftAssignment},

	{"...", ast.Ellipsis},
	{"===", ast.StrictEquality},
	{"!==", ast.StrictInequality},
	{"**=", ast.ExponentiationAssignment},
	{"<<=", ast.LeftShiftAssignment},
	{">>=", ast.RightShiftAssignment},
	{">>>", ast.UnsignedRightShift},
	{"&&=", ast.AndAssignment},
	{"||=", ast.OrAssignment},
	{"??=", ast.NullishCoalescenceAssignment},

	{"=>", ast.FunctionArrow},
	{"<=", ast.LessOrEqual},
	{">=", ast.MoreOrEqual},
	{"==", ast.LooseEquality},
	{"!=", ast.LooseInequality},
	{"**", ast.Exponentiation},
	{"++", ast.Increment},
	{"--", ast.Decrement},
	{"<<", ast.LeftShift},
	{">>", ast.RightShift},
	{"&&", ast.And},
	{"||", ast.Or},
	{"??", ast.NullishCoalescence},
	{"+=", ast.AdditionAssignment},
	{"-=", ast.SubtractionAssignment},
	{"*=", ast.MultiplicationAssignment},
	{"%=", ast.ModuloAssignment},
	{"&=", ast.BitAndAssignment},
	{"|=", ast.BitOrAssignment},
	{"^=", ast.BitXorAssignment},

	{"{", ast.OpeningBrace},
	{"(", ast.OpeningParenthesis},
	{")", ast.ClosingParenthesis},
	{"[", ast.OpeningBracket},
	{"]", ast.ClosingBracket},
	{".", ast.Dot},
	{";", ast.Semicolon},
	{",", ast.Comma},
	{"<", ast.Less},
	{">", ast.More},
	{"+", ast.Addition},
	{"-", ast.Subtraction},
	{"*", ast.Multiplication},
	{"%", ast.Modulo},
	{"&", ast.BitAnd},
	{"|", ast.BitOr},
	{"^", ast.BitXor},
	{"!", ast.Not},
	{"~", ast.BitNot},
	{"?", ast.QuestionMark},
	{":", ast.Colon},
	{"=", ast.Assignment},
}

// divPunctuators follows the same ordering rule.
var divPunctuators = []Terminal{
	{"/=", ast.DivisionAssignment},
	{"/", ast.Division},
}

var (
	textByRule    = map[ast.Rule]string{}
	keywordByText = map[string]ast.Rule{}
	punctByText   = map[string]ast.Rule{}
)

func init() {
	for _, t := range reservedWords {
		textByRule[t.Rule] = t.Text
		keywordByText[t.Text] = t.Rule
	}
	for _, group := range [][]Terminal{otherPunctuators, divPunctuators, {{"}", ast.ClosingBrace}}} {
		for _, t := range group {
			textByRule[t.Rule] = t.Text
			punctByText[t.Text] = t.Rule
		}
	}
	textByRule[ast.OptionalChainingPunctuator] = "?."
	punctByText["?."] = ast.OptionalChainingPunctuator
}

// ReservedWords returns the reserved words in matching order.
func ReservedWords() []Terminal { return append([]Terminal(nil), reservedWords...) }

// OtherPunctuators returns the OtherPunctuator terminals in matching order.
func OtherPunctuators() []Terminal { return append([]Terminal(nil), otherPunctuators...) }

// DivPunctuators returns the DivPunctuator terminals in matching order.
func DivPunctuators() []Terminal { return append([]Terminal(nil), divPunctuators...) }

// LookupKeyword maps a reserved word to its rule.
func LookupKeyword(text string) (ast.Rule, bool) {
	r, ok := keywordByText[text]
	return r, ok
}

// LookupPunctuator maps punctuator text (including "?.", "/", "/=", "}") to its rule.
func LookupPunctuator(text string) (ast.Rule, bool) {
	r, ok := punctByText[text]
	return r, ok
}

// Text returns the fixed source text of a keyword or punctuator rule.
func Text(r ast.Rule) (string, bool) {
	s, ok := textByRule[r]
	return s, ok
}

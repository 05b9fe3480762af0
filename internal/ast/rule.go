package ast

import "fmt"

// Rule identifies the grammar production (nonterminal or terminal) a Node was
// produced by. Names follow ECMA-262; keyword terminals carry a Kw prefix.
type Rule uint16

const (
	// NoRule is the zero value and never labels a produced node.
	NoRule Rule = iota
	// EOI is the end-of-input pseudo rule; it only appears in expected sets.
	EOI

	// Lexical goal symbols
	InputElementDiv
	InputElementRegExp
	InputElementRegExpOrTemplateTail
	InputElementTemplateTail
	InputElementHashbangOrRegExp

	// Space
	WhiteSpace
	LineTerminator
	LineTerminatorSequence

	// Comments
	Comment
	MultiLineComment
	SingleLineComment
	HashbangComment

	// Names
	CommonToken
	IdentifierName
	PrivateIdentifier
	NumberSign // # of PrivateIdentifier
	ReservedWord

	// Numbers
	NumericLiteral
	DecimalDigit

	// Punctuator groups
	Punctuator
	OptionalChainingPunctuator
	OtherPunctuator
	DivPunctuator
	RightBracePunctuator

	// OtherPunctuator terminals
	Addition                     // +
	AdditionAssignment           // +=
	And                          // &&
	AndAssignment                // &&=
	Assignment                   // =
	BitAnd                       // &
	BitAndAssignment             // &=
	BitNot                       // ~
	BitOr                        // |
	BitOrAssignment              // |=
	BitXor                       // ^
	BitXorAssignment             // ^=
	ClosingBracket               // ]
	ClosingParenthesis           // )
	Colon                        // :
	Comma                        // ,
	Decrement                    // --
	Dot                          // .
	Ellipsis                     // ...
	Exponentiation               // **
	ExponentiationAssignment     // **=
	FunctionArrow                // =>
	Increment                    // ++
	LeftShift                    // <<
	LeftShiftAssignment          // <<=
	Less                         // <
	LessOrEqual                  // <=
	LooseEquality                // ==
	LooseInequality              // !=
	Modulo                       // %
	ModuloAssignment             // %=
	More                         // >
	MoreOrEqual                  // >=
	Multiplication               // *
	MultiplicationAssignment     // *=
	Not                          // !
	NullishCoalescence           // ??
	NullishCoalescenceAssignment // ??=
	OpeningBrace                 // {
	OpeningBracket               // [
	OpeningParenthesis           // (
	Or                           // ||
	OrAssignment                 // ||=
	QuestionMark                 // ?
	RightShift                   // >>
	RightShiftAssignment         // >>=
	Semicolon                    // ;
	StrictEquality               // ===
	StrictInequality             // !==
	Subtraction                  // -
	SubtractionAssignment        // -=
	UnsignedRightShift           // >>>
	UnsignedRightShiftAssignment // >>>=

	// DivPunctuator / RightBracePunctuator terminals
	Division           // /
	DivisionAssignment // /=
	ClosingBrace       // }

	// ReservedWord terminals
	KwAwait
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwYield

	// Syntactic grammar
	Script
	ScriptBody
	Module
	ModuleBody
	ModuleItemList
	ModuleItem
	StatementList
	StatementListItem
	Statement
	EmptyStatement
	DebuggerStatement

	ruleCount
)

var ruleNames = [ruleCount]string{
	NoRule: "NoRule",
	EOI:    "EOI",

	InputElementDiv:                  "InputElementDiv",
	InputElementRegExp:               "InputElementRegExp",
	InputElementRegExpOrTemplateTail: "InputElementRegExpOrTemplateTail",
	InputElementTemplateTail:         "InputElementTemplateTail",
	InputElementHashbangOrRegExp:     "InputElementHashbangOrRegExp",

	WhiteSpace:             "WhiteSpace",
	LineTerminator:         "LineTerminator",
	LineTerminatorSequence: "LineTerminatorSequence",

	Comment:           "Comment",
	MultiLineComment:  "MultiLineComment",
	SingleLineComment: "SingleLineComment",
	HashbangComment:   "HashbangComment",

	CommonToken:       "CommonToken",
	IdentifierName:    "IdentifierName",
	PrivateIdentifier: "PrivateIdentifier",
	NumberSign:        "NumberSign",
	ReservedWord:      "ReservedWord",

	NumericLiteral: "NumericLiteral",
	DecimalDigit:   "DecimalDigit",

	Punctuator:                 "Punctuator",
	OptionalChainingPunctuator: "OptionalChainingPunctuator",
	OtherPunctuator:            "OtherPunctuator",
	DivPunctuator:              "DivPunctuator",
	RightBracePunctuator:       "RightBracePunctuator",

	Addition:                     "Addition",
	AdditionAssignment:           "AdditionAssignment",
	And:                          "And",
	AndAssignment:                "AndAssignment",
	Assignment:                   "Assignment",
	BitAnd:                       "BitAnd",
	BitAndAssignment:             "BitAndAssignment",
	BitNot:                       "BitNot",
	BitOr:                        "BitOr",
	BitOrAssignment:              "BitOrAssignment",
	BitXor:                       "BitXor",
	BitXorAssignment:             "BitXorAssignment",
	ClosingBracket:               "ClosingBracket",
	ClosingParenthesis:           "ClosingParenthesis",
	Colon:                        "Colon",
	Comma:                        "Comma",
	Decrement:                    "Decrement",
	Dot:                          "Dot",
	Ellipsis:                     "Ellipsis",
	Exponentiation:               "Exponentiation",
	ExponentiationAssignment:     "ExponentiationAssignment",
	FunctionArrow:                "FunctionArrow",
	Increment:                    "Increment",
	LeftShift:                    "LeftShift",
	LeftShiftAssignment:          "LeftShiftAssignment",
	Less:                         "Less",
	LessOrEqual:                  "LessOrEqual",
	LooseEquality:                "LooseEquality",
	LooseInequality:              "LooseInequality",
	Modulo:                       "Modulo",
	ModuloAssignment:             "ModuloAssignment",
	More:                         "More",
	MoreOrEqual:                  "MoreOrEqual",
	Multiplication:               "Multiplication",
	MultiplicationAssignment:     "MultiplicationAssignment",
	Not:                          "Not",
	NullishCoalescence:           "NullishCoalescence",
	NullishCoalescenceAssignment: "NullishCoalescenceAssignment",
	OpeningBrace:                 "OpeningBrace",
	OpeningBracket:               "OpeningBracket",
	OpeningParenthesis:           "OpeningParenthesis",
	Or:                           "Or",
	OrAssignment:                 "OrAssignment",
	QuestionMark:                 "QuestionMark",
	RightShift:                   "RightShift",
	RightShiftAssignment:         "RightShiftAssignment",
	Semicolon:                    "Semicolon",
	StrictEquality:               "StrictEquality",
	StrictInequality:             "StrictInequality",
	Subtraction:                  "Subtraction",
	SubtractionAssignment:        "SubtractionAssignment",
	UnsignedRightShift:           "UnsignedRightShift",
	UnsignedRightShiftAssignment: "UnsignedRightShiftAssignment",

	Division:           "Division",
	DivisionAssignment: "DivisionAssignment",
	ClosingBrace:       "ClosingBrace",

	KwAwait:      "Await",
	KwBreak:      "Break",
	KwCase:       "Case",
	KwCatch:      "Catch",
	KwClass:      "Class",
	KwConst:      "Const",
	KwContinue:   "Continue",
	KwDebugger:   "Debugger",
	KwDefault:    "Default",
	KwDelete:     "Delete",
	KwDo:         "Do",
	KwElse:       "Else",
	KwEnum:       "Enum",
	KwExport:     "Export",
	KwExtends:    "Extends",
	KwFalse:      "False",
	KwFinally:    "Finally",
	KwFor:        "For",
	KwFunction:   "Function",
	KwIf:         "If",
	KwImport:     "Import",
	KwIn:         "In",
	KwInstanceof: "Instanceof",
	KwNew:        "New",
	KwNull:       "Null",
	KwReturn:     "Return",
	KwSuper:      "Super",
	KwSwitch:     "Switch",
	KwThis:       "This",
	KwThrow:      "Throw",
	KwTrue:       "True",
	KwTry:        "Try",
	KwTypeof:     "Typeof",
	KwVar:        "Var",
	KwVoid:       "Void",
	KwWhile:      "While",
	KwWith:       "With",
	KwYield:      "Yield",

	Script:            "Script",
	ScriptBody:        "ScriptBody",
	Module:            "Module",
	ModuleBody:        "ModuleBody",
	ModuleItemList:    "ModuleItemList",
	ModuleItem:        "ModuleItem",
	StatementList:     "StatementList",
	StatementListItem: "StatementListItem",
	Statement:         "Statement",
	EmptyStatement:    "EmptyStatement",
	DebuggerStatement: "DebuggerStatement",
}

func (r Rule) String() string {
	if r < ruleCount && ruleNames[r] != "" {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint16(r))
}

// Valid reports whether r names a known production.
func (r Rule) Valid() bool {
	return r > NoRule && r < ruleCount
}

// IsPunctuatorTerminal reports whether r is one of the single punctuator terminals.
func (r Rule) IsPunctuatorTerminal() bool {
	return r >= Addition && r <= ClosingBrace
}

// IsKeyword reports whether r is one of the ReservedWord terminals.
func (r Rule) IsKeyword() bool {
	return r >= KwAwait && r <= KwYield
}

// Rules returns every valid rule in declaration order.
func Rules() []Rule {
	out := make([]Rule, 0, ruleCount-1)
	for r := NoRule + 1; r < ruleCount; r++ {
		out = append(out, r)
	}
	return out
}

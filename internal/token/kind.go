package token

import "fmt"

// Kind is the coarse classification of a token.
type Kind uint8

const (
	Invalid Kind = iota // нераспознанный фрагмент, лексер продолжает после него
	EOF
	WhiteSpace
	LineTerminator
	MultiLineComment
	SingleLineComment
	HashbangComment
	IdentifierName
	PrivateIdentifier
	ReservedWord
	Punctuator
	NumericLiteral
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	EOF:               "EOF",
	WhiteSpace:        "WhiteSpace",
	LineTerminator:    "LineTerminator",
	MultiLineComment:  "MultiLineComment",
	SingleLineComment: "SingleLineComment",
	HashbangComment:   "HashbangComment",
	IdentifierName:    "IdentifierName",
	PrivateIdentifier: "PrivateIdentifier",
	ReservedWord:      "ReservedWord",
	Punctuator:        "Punctuator",
	NumericLiteral:    "NumericLiteral",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsTrivia reports whether tokens of kind k carry no syntactic meaning.
func (k Kind) IsTrivia() bool {
	switch k {
	case WhiteSpace, LineTerminator, MultiLineComment, SingleLineComment, HashbangComment:
		return true
	default:
		return false
	}
}

// IsComment reports whether k is one of the comment kinds.
func (k Kind) IsComment() bool {
	return k == MultiLineComment || k == SingleLineComment || k == HashbangComment
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexInvalidUTF8              Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexMisplacedHashbang        Code = 1004
	LexInvalidIdentifierEscape  Code = 1006

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynTrailingInput   Code = 2002

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Конфигурация
	CfgInvalidValue Code = 5001

	// Внутренние ошибки парсера
	IntRecursionLimit Code = 9001
	IntBrokenGrammar  Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexInvalidUTF8:              "Invalid UTF-8 sequence",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexMisplacedHashbang:        "Hashbang comment is only allowed at the start of the source",
	LexInvalidIdentifierEscape:  "Escape sequence does not denote an identifier character",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynTrailingInput:            "Unexpected input after the end of the program",
	IOLoadFileError:             "Failed to load file",
	IOCacheError:                "Token cache failure",
	CfgInvalidValue:             "Invalid configuration value",
	IntRecursionLimit:           "Parser nesting limit exceeded",
	IntBrokenGrammar:            "Parser grammar is inconsistent",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsInternal reports whether the code means the parser itself failed
// rather than the input being invalid.
func (c Code) IsInternal() bool {
	return c >= 9000 && c < 10000
}

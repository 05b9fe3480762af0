package lexer

import "github.com/arhadthedev/embedded-ecmascript/internal/uniprop"

const (
	chTab   = '\u0009'
	chVT    = '\u000B'
	chFF    = '\u000C'
	chLF    = '\u000A'
	chCR    = '\u000D'
	chLS    = '\u2028'
	chPS    = '\u2029'
	chZWNBS = '\uFEFF'
	chZWNJ  = '\u200C'
	chZWJ   = '\u200D'
)

// isWhiteSpace: <TAB> <VT> <FF> <ZWNBSP> <USP>. SP and NBSP are Zs.
func isWhiteSpace(r rune) bool {
	switch r {
	case chTab, chVT, chFF, chZWNBS:
		return true
	}
	return uniprop.IsSpaceSeparator(r)
}

func isLineTerminator(r rune) bool {
	return r == chLF || r == chCR || r == chLS || r == chPS
}

func isIdentifierStartChar(r rune) bool {
	return r == '$' || r == '_' || uniprop.IsIDStart(r)
}

func isIdentifierPartChar(r rune) bool {
	return r == '$' || r == chZWNJ || r == chZWJ || uniprop.IsIDContinue(r)
}

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

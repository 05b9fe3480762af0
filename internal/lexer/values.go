package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeError describes an identifier escape that is well-formed but does
// not denote an acceptable code point.
type EscapeError struct {
	Offset int // смещение обратной косой черты в тексте идентификатора
	Len    int
	Msg    string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("invalid identifier escape at offset %d: %s", e.Offset, e.Msg)
}

var errNotIdentifier = errors.New("not an identifier name")

// IdentifierValue decodes the StringValue of an IdentifierName: every
// \uXXXX or \u{X...} escape is replaced by its code point. It reports an
// *EscapeError when an escape encodes a code point that may not appear at
// its position.
func IdentifierValue(text string) (string, error) {
	if text == "" {
		return "", errNotIdentifier
	}
	if !strings.Contains(text, `\`) {
		return text, nil
	}
	var sb strings.Builder
	sb.Grow(len(text))
	first := true
	for i := 0; i < len(text); {
		if text[i] != '\\' {
			r, size := utf8.DecodeRuneInString(text[i:])
			sb.WriteRune(r)
			i += size
			first = false
			continue
		}
		r, size, err := decodeEscape(text[i:])
		if err != nil {
			return "", &EscapeError{Offset: i, Len: size, Msg: err.Error()}
		}
		switch {
		case first && !isIdentifierStartChar(r):
			return "", &EscapeError{Offset: i, Len: size, Msg: fmt.Sprintf("U+%04X cannot start an identifier", r)}
		case !first && !isIdentifierPartChar(r):
			return "", &EscapeError{Offset: i, Len: size, Msg: fmt.Sprintf("U+%04X cannot appear in an identifier", r)}
		}
		sb.WriteRune(r)
		i += size
		first = false
	}
	return sb.String(), nil
}

// decodeEscape decodes one \u escape at the start of s.
func decodeEscape(s string) (rune, int, error) {
	if !strings.HasPrefix(s, `\u`) {
		return 0, 1, errors.New("expected \\u")
	}
	if strings.HasPrefix(s, `\u{`) {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, len(s), errors.New("unterminated code point escape")
		}
		digits := s[3:end]
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || digits == "" {
			return 0, end + 1, fmt.Errorf("malformed code point %q", digits)
		}
		if v > utf8.MaxRune {
			return 0, end + 1, fmt.Errorf("code point 0x%s is above U+10FFFF", digits)
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 6 {
		return 0, len(s), errors.New("truncated escape")
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 6, fmt.Errorf("malformed escape %q", s[:6])
	}
	return rune(v), 6, nil
}

// PrivateIdentifierValue returns "#" followed by the StringValue of the name.
func PrivateIdentifierValue(text string) (string, error) {
	if !strings.HasPrefix(text, "#") {
		return "", errNotIdentifier
	}
	v, err := IdentifierValue(text[1:])
	if err != nil {
		var ee *EscapeError
		if errors.As(err, &ee) {
			ee.Offset++
		}
		return "", err
	}
	return "#" + v, nil
}

// HashbangValue returns the comment text after "#!".
func HashbangValue(text string) string {
	return strings.TrimPrefix(text, "#!")
}

// DigitValue returns the value of a single-digit NumericLiteral.
func DigitValue(text string) (int, bool) {
	if len(text) != 1 || !isDecimalDigit(rune(text[0])) {
		return 0, false
	}
	return int(text[0] - '0'), true
}

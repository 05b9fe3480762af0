package source

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// buildLineIndex records the start offset of every line after the first one.
// ECMAScript line terminators are LF, CR, LS and PS; CR LF counts once.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i := 0; i < len(content); {
		b := content[i]
		switch {
		case b == '\n':
			i++
			out = append(out, uint32(i))
		case b == '\r':
			i++
			if i < len(content) && content[i] == '\n' {
				i++
			}
			out = append(out, uint32(i))
		case b == 0xE2:
			r, sz := utf8.DecodeRune(content[i:])
			i += sz
			if r == '\u2028' || r == '\u2029' {
				out = append(out, uint32(i))
			}
		default:
			i++
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: количество начал строк <= off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var startOff uint32
	if lo > 0 {
		startOff = lineIdx[lo-1]
	}
	return LineCol{Line: uint32(lo + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns target relative to baseDir. Targets outside baseDir
// fall back to the normalized absolute path.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// Package uniprop answers Unicode property questions the ECMAScript lexical
// grammar depends on: ID_Start, ID_Continue and Space_Separator (Zs).
//
// The tables are derived once, at package initialisation, from the Unicode
// character database shipped with the Go toolchain, topped up with the
// Unicode 15.1 additions the toolchain tables (15.0) lack. They are read-only
// afterwards, so every function here is safe for concurrent use.
//
// Derivation follows UAX #31:
//
//	ID_Start    = L + Nl + Other_ID_Start - Pattern_Syntax - Pattern_White_Space
//	ID_Continue = ID_Start + Mn + Mc + Nd + Pc + Other_ID_Continue - Pattern_Syntax - Pattern_White_Space
package uniprop

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Version is the Unicode version the tables were built from.
var Version = "15.1.0"

// Unicode 15.1 additions missing from unicode.Version 15.0.0 tables.
// Merging is idempotent, so a newer toolchain loses nothing.
var (
	// CJK Unified Ideographs Extension I (Lo)
	idStart151 = &unicode.RangeTable{
		R32: []unicode.Range32{{Lo: 0x2EBF0, Hi: 0x2EE5D, Stride: 1}},
	}
	// ZWNJ, ZWJ, katakana middle dots
	otherIDContinue151 = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x200C, Hi: 0x200D, Stride: 1},
			{Lo: 0x30FB, Hi: 0x30FB, Stride: 1},
			{Lo: 0xFF65, Hi: 0xFF65, Stride: 1},
		},
	}
)

var (
	idStart    *unicode.RangeTable
	idContinue *unicode.RangeTable
	spaceSep   *unicode.RangeTable
)

func init() {
	idStart, idContinue, spaceSep = buildTables()
	// Битые таблицы дают тихо неверную классификацию, поэтому падаем сразу.
	if err := Validate(); err != nil {
		panic(err)
	}
}

func buildTables() (start, cont, space *unicode.RangeTable) {
	excluded := rangetable.Merge(unicode.Pattern_Syntax, unicode.Pattern_White_Space)

	start = subtract(rangetable.Merge(
		unicode.L, unicode.Nl, unicode.Other_ID_Start, idStart151,
	), excluded)
	cont = subtract(rangetable.Merge(
		start, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue, otherIDContinue151,
	), excluded)
	space = rangetable.Merge(unicode.Zs)
	return start, cont, space
}

// subtract returns the code points of from that are not in minus.
func subtract(from, minus *unicode.RangeTable) *unicode.RangeTable {
	var runes []rune
	rangetable.Visit(from, func(r rune) {
		if !unicode.Is(minus, r) {
			runes = append(runes, r)
		}
	})
	return rangetable.New(runes...)
}

// IsIDStart reports whether r has the ID_Start property.
func IsIDStart(r rune) bool {
	if r < 0x80 {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	}
	return unicode.Is(idStart, r)
}

// IsIDContinue reports whether r has the ID_Continue property.
func IsIDContinue(r rune) bool {
	if r < 0x80 {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
	}
	return unicode.Is(idContinue, r)
}

// IsSpaceSeparator reports whether r belongs to the Space_Separator (Zs) category.
func IsSpaceSeparator(r rune) bool {
	if r < 0x80 {
		return r == ' '
	}
	return unicode.Is(spaceSep, r)
}

type anchor struct {
	r     rune
	start bool
	cont  bool
	space bool
}

// anchors are code points whose properties are stable from Unicode 15.1 on.
var anchors = []anchor{
	{r: 'a', start: true, cont: true},
	{r: 'Z', start: true, cont: true},
	{r: '7', cont: true},
	{r: '_', cont: true},
	{r: '$'},
	{r: ' ', space: true},
	{r: '\u00A0', space: true},
	{r: '\u00B7', cont: true},             // Other_ID_Continue
	{r: '\u0300', cont: true},             // combining grave accent (Mn)
	{r: '\u05D0', start: true, cont: true}, // hebrew alef
	{r: '\u1680', space: true},
	{r: '\u2118', start: true, cont: true}, // Other_ID_Start
	{r: '\u2028'},
	{r: '\u2E2F'}, // vertical tilde: Lm, but Pattern_Syntax
	{r: '\u3000', space: true},
	{r: '\u4E00', start: true, cont: true},
	{r: '\u30FB', cont: true}, // Other_ID_Continue since 15.1
	{r: '\uFEFF'},
	{r: '\uFF65', cont: true},
	{r: '\U0001D400', start: true, cont: true},
	{r: '\U0002EBF0', start: true, cont: true}, // CJK Extension I
	{r: '\U0002EE5D', start: true, cont: true},
}

// Validate checks the derived tables against code points with well-known properties.
func Validate() error {
	if idStart == nil || idContinue == nil || spaceSep == nil {
		return fmt.Errorf("uniprop: tables are not initialised")
	}
	for _, a := range anchors {
		if got := IsIDStart(a.r); got != a.start {
			return fmt.Errorf("uniprop: ID_Start(%U) = %v, want %v (unicode %s)", a.r, got, a.start, Version)
		}
		if got := IsIDContinue(a.r); got != a.cont {
			return fmt.Errorf("uniprop: ID_Continue(%U) = %v, want %v (unicode %s)", a.r, got, a.cont, Version)
		}
		if got := IsSpaceSeparator(a.r); got != a.space {
			return fmt.Errorf("uniprop: Space_Separator(%U) = %v, want %v (unicode %s)", a.r, got, a.space, Version)
		}
	}
	return nil
}

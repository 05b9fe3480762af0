package uniprop

import (
	"sync"
	"testing"
	"unicode"
)

func isIn(t *unicode.RangeTable, r rune) bool {
	return unicode.Is(t, r)
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if Version == "" {
		t.Fatalf("Version must not be empty")
	}
}

func TestUnicode151Additions(t *testing.T) {
	if Version != "15.1.0" {
		t.Fatalf("Version = %q, want 15.1.0", Version)
	}
	tests := []struct {
		r     rune
		start bool
		cont  bool
	}{
		{'\U0002EBF0', true, true},
		{'\U0002ED00', true, true},
		{'\U0002EE5D', true, true},
		{'\u30FB', false, true},
		{'\uFF65', false, true},
		{'\u200C', false, true},
		{'\u200D', false, true},
	}
	for _, tt := range tests {
		if got := IsIDStart(tt.r); got != tt.start {
			t.Errorf("IsIDStart(%U) = %v, want %v", tt.r, got, tt.start)
		}
		if got := IsIDContinue(tt.r); got != tt.cont {
			t.Errorf("IsIDContinue(%U) = %v, want %v", tt.r, got, tt.cont)
		}
	}
}

func TestASCIIFastPathMatchesTables(t *testing.T) {
	for r := rune(0); r < 0x80; r++ {
		if got, want := IsIDStart(r), isIn(idStart, r); got != want {
			t.Errorf("IsIDStart(%q) = %v, table says %v", r, got, want)
		}
		if got, want := IsIDContinue(r), isIn(idContinue, r); got != want {
			t.Errorf("IsIDContinue(%q) = %v, table says %v", r, got, want)
		}
		if got, want := IsSpaceSeparator(r), isIn(spaceSep, r); got != want {
			t.Errorf("IsSpaceSeparator(%q) = %v, table says %v", r, got, want)
		}
	}
}

func TestStartImpliesContinue(t *testing.T) {
	for r := rune(0); r <= 0x3FFFF; r++ {
		if IsIDStart(r) && !IsIDContinue(r) {
			t.Fatalf("%U is ID_Start but not ID_Continue", r)
		}
	}
}

func TestSpaceSeparators(t *testing.T) {
	spaces := []rune{
		' ', '\u00A0', '\u1680', '\u2000', '\u2001', '\u2002', '\u2003', '\u2004',
		'\u2005', '\u2006', '\u2007', '\u2008', '\u2009', '\u200A', '\u202F', '\u205F', '\u3000',
	}
	for _, r := range spaces {
		if !IsSpaceSeparator(r) {
			t.Errorf("%U must be a space separator", r)
		}
	}
	for _, r := range []rune{'\t', '\n', '\u000B', '\u000C', '\uFEFF', '\u2028', '\u200B'} {
		if IsSpaceSeparator(r) {
			t.Errorf("%U must not be a space separator", r)
		}
	}
}

func TestConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := rune(0); r < 0x3000; r++ {
				_ = IsIDStart(r)
				_ = IsIDContinue(r)
				_ = IsSpaceSeparator(r)
			}
		}()
	}
	wg.Wait()
}

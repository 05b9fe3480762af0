package diag

import (
	"errors"
	"testing"

	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{LexUnknownChar, "LEX1001"},
		{LexUnterminatedBlockComment, "LEX1003"},
		{SynTrailingInput, "SYN2002"},
		{IOLoadFileError, "IO4001"},
		{CfgInvalidValue, "CFG5001"},
		{IntRecursionLimit, "INT9001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %s, want %s", tt.code, got, tt.id)
		}
	}
	if !IntBrokenGrammar.IsInternal() || SynUnexpectedToken.IsInternal() {
		t.Fatalf("IsInternal misclassifies codes")
	}
	if Code(1999).Title() != "Unknown error" {
		t.Fatalf("missing description must fall back to unknown")
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	b.Add(NewError(SynUnexpectedToken, sp(5), "x"))
	b.Add(New(SevWarning, LexInvalidIdentifierEscape, sp(1), "w"))
	b.Add(NewError(SynUnexpectedToken, sp(5), "x"))
	if b.Add(NewError(LexUnknownChar, sp(0), "over")) {
		t.Fatalf("limit not enforced")
	}
	if b.Dropped() != 1 || b.Len() != 3 || !b.HasErrors() || b.Count(SevWarning) != 1 {
		t.Fatalf("unexpected bag state: len=%d dropped=%d", b.Len(), b.Dropped())
	}
	b.Sort()
	if b.Items()[0].Primary.Start != 1 {
		t.Fatalf("sort by start failed: %v", b.Items())
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("dedup left %d items", b.Len())
	}
}

func TestBagSortSeverityFirst(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{Start: 3, End: 4}
	b.Add(New(SevInfo, LexInfo, sp, "i"))
	b.Add(New(SevWarning, IOCacheError, sp, "w"))
	b.Add(NewError(LexUnknownChar, sp, "e"))
	b.Add(NewError(LexInvalidUTF8, sp, "e2"))
	b.Sort()
	var got []Code
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{LexUnknownChar, LexInvalidUTF8, IOCacheError, LexInfo}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBagMergeKeepsLimit(t *testing.T) {
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	unlimited := NewBag(0)
	for i := 0; i < 200; i++ {
		unlimited.Add(NewError(LexUnknownChar, sp(uint32(i)), "c"))
	}
	if unlimited.Len() != 200 || unlimited.Limit() != 0 {
		t.Fatalf("unlimited bag kept %d", unlimited.Len())
	}

	small := NewBag(1)
	small.Add(NewError(LexUnknownChar, sp(0), "a"))
	small.Add(NewError(LexUnknownChar, sp(1), "b"))

	total := NewBag(150)
	total.Merge(unlimited)
	total.Merge(small)
	total.Merge(nil)
	if total.Len() != 150 || total.Dropped() != 50+1+1 {
		t.Fatalf("merge: len=%d dropped=%d", total.Len(), total.Dropped())
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 1, End: 2}
	var r Reporter = BagReporter{Bag: bag}
	r.Report(LexUnknownChar, SevError, sp, "unknown character '@'", nil)
	r = bag
	r.Report(SynUnexpectedToken, SevError, sp, "unexpected", []Note{{Span: sp, Msg: "here"}})
	if bag.Len() != 2 || len(bag.Items()[1].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
	BagReporter{}.Report(LexUnknownChar, SevError, sp, "dropped", nil)

	var seen []Diagnostic
	r = ReporterFunc(func(d Diagnostic) { seen = append(seen, d) })
	r.Report(LexInvalidUTF8, SevError, sp, "invalid UTF-8", nil)
	if len(seen) != 1 || seen[0].Code != LexInvalidUTF8 || seen[0].Primary != sp {
		t.Fatalf("ReporterFunc got %+v", seen)
	}
}

func TestSourceCodeError(t *testing.T) {
	d := NewError(SynUnexpectedToken, source.Span{Start: 2, End: 5}, "unexpected token")
	var err error = d.Err()
	if got := err.Error(); got != "error in characters #3-#5: unexpected token" {
		t.Fatalf("Error() = %q", got)
	}
	var sce *SourceCodeError
	if !errors.As(err, &sce) || sce.Diagnostic().Code != SynUnexpectedToken {
		t.Fatalf("round trip through SourceCodeError lost the code")
	}
}

package observ

import (
	"math"
	"strings"
	"testing"
)

func TestNilTimerIsNoop(t *testing.T) {
	var tm *Timer
	if idx := tm.Begin("lex"); idx != -1 {
		t.Fatalf("Begin on nil = %d", idx)
	}
	tm.End(0, "x")
	tm.Track("parse")("done")
	if r := tm.Report(); r != nil {
		t.Fatalf("report of nil timer = %+v", r)
	}
	if s := tm.Report().Summary(); s != "" {
		t.Fatalf("summary of nil report = %q", s)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	if tm.Report() != nil {
		t.Fatal("empty timer produced a report")
	}
	done := tm.Track("cache")
	done("miss")
	idx := tm.Begin("lex")
	tm.End(idx, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "cache" || r.Phases[0].Note != "miss" || r.Phases[1].Name != "lex" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	var sum float64
	for _, p := range r.Phases {
		if p.DurationMS < 0 {
			t.Fatalf("negative duration in %+v", p)
		}
		sum += p.DurationMS
	}
	if math.Abs(r.TotalMS-sum) > 1e-6 {
		t.Errorf("total %v != sum %v", r.TotalMS, sum)
	}

	s := r.Summary()
	for _, want := range []string{"timings:\n", "cache", "// miss", "lex", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary misses %q:\n%s", want, s)
		}
	}
}

package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if l.String() != strings.ToLower(name) {
			t.Fatalf("round trip %q -> %s", name, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("invalid level accepted")
	}
	var l Level
	if err := l.UnmarshalText([]byte("detail")); err != nil || l != LevelDetail {
		t.Fatalf("UnmarshalText: %v %v", l, err)
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestNames(t *testing.T) {
	if KindError.String() != "error" || Kind(0).String() != "unknown" || Kind(99).String() != "unknown" {
		t.Errorf("kind names: %s %s %s", KindError, Kind(0), Kind(99))
	}
	if ScopeRule.String() != "rule" || Scope(0).String() != "unknown" {
		t.Errorf("scope names: %s %s", ScopeRule, Scope(0))
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	sp := Begin(tr, ScopePass, "parse", 0)
	sp.WithExtra("rule", "Script").WithExtra("file", "a.js")
	Begin(tr, ScopeRule, "hidden", sp.ID()).End("")
	sp.End("ok")

	if buf.Len() != 0 {
		t.Fatalf("events written before Flush: %q", buf.String())
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "→ parse") {
		t.Fatalf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "← parse [") || !strings.HasSuffix(lines[1], "(ok) {file=a.js, rule=Script}") {
		t.Fatalf("end line: %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	// ошибки сбрасываются сразу
	Error(tr, ScopePass, "parse", "no match", 0)
	Point(tr, ScopePass, "skipped", "", 0)

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if ev["kind"] != "error" || ev["detail"] != "no match" {
		t.Fatalf("unexpected event %v", ev)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamTracerStickyError(t *testing.T) {
	tr := NewStreamTracer(failingWriter{}, LevelDebug, FormatText)
	Error(tr, ScopePass, "a", "", 0)
	Error(tr, ScopePass, "b", "", 0)
	if err := tr.Close(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Close() = %v", err)
	}
	if n := tr.Dropped(); n != 1 {
		t.Fatalf("dropped %d events, want 1", n)
	}
}

func TestRecorderWraps(t *testing.T) {
	r := NewRecorder(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeRule, name, "", 0)
	}
	got := r.Events()
	if len(got) != 3 || got[0].Name != "c" || got[2].Name != "e" {
		t.Fatalf("unexpected events %v", got)
	}
	if got[0].Seq >= got[1].Seq {
		t.Fatalf("sequence not increasing: %d %d", got[0].Seq, got[1].Seq)
	}
	if len(r.Find(KindPoint, "d")) != 1 || len(r.Find(KindPoint, "a")) != 0 {
		t.Fatalf("Find ignores eviction")
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump wrote %q", buf.String())
	}
}

func TestTeeAndSlog(t *testing.T) {
	var a, b bytes.Buffer
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	st := NewSlogTracer(LevelPhase, slog.NewTextHandler(&a, opts), slog.NewJSONHandler(&b, opts))
	rec := NewRecorder(8, LevelDebug)
	m := Tee(st, rec, Nop, nil)
	if m.Level() != LevelDebug {
		t.Fatalf("tee level = %s", m.Level())
	}

	sp := Begin(m, ScopePass, "tokenize", 0)
	sp.WithExtra("tokens", "3")
	Point(m, ScopeRule, "expected", "Semicolon", sp.ID())
	sp.End("")

	for name, out := range map[string]string{"text": a.String(), "json": b.String()} {
		if !strings.Contains(out, "tokenize") || !strings.Contains(out, "tokens") || !strings.Contains(out, "dur") {
			t.Fatalf("%s handler missed the span end: %q", name, out)
		}
		if strings.Contains(out, "expected") {
			t.Fatalf("%s handler kept a rule event at phase level: %q", name, out)
		}
	}
	if n := len(rec.Events()); n != 3 {
		t.Fatalf("recorder kept %d events, want 3", n)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestTeeCollapses(t *testing.T) {
	if Tee() != Nop || Tee(Nop, nil) != Nop {
		t.Fatal("tee of nothing must be Nop")
	}
	rec := NewRecorder(1, LevelPhase)
	if Tee(Nop, rec) != Tracer(rec) {
		t.Fatal("tee of one tracer must be that tracer")
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || Enabled(tr) {
		t.Fatalf("off level must give the nop tracer")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*StreamTracer); !ok {
		t.Fatalf("plain config must produce a StreamTracer, got %T", tr)
	}
	tr, err = New(Config{Level: LevelPhase, Output: &buf, Handlers: []slog.Handler{slog.NewTextHandler(&buf, nil)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*tee); !ok {
		t.Fatalf("handlers must produce a fan-out, got %T", tr)
	}
}

func TestStartNestsSpans(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	rec := NewRecorder(16, LevelDebug)
	ctx := WithTracer(context.Background(), rec)
	if FromContext(ctx) != Tracer(rec) {
		t.Fatalf("tracer lost in context")
	}

	ctx, outer := Start(ctx, ScopeDriver, "batch")
	if CurrentSpan(ctx) != outer.ID() || outer.ID() == 0 {
		t.Fatalf("span id lost in context")
	}
	_, inner := Start(ctx, ScopeFile, "file")
	inner.End("")
	outer.End("")

	ends := rec.Find(KindSpanEnd, "file")
	if len(ends) != 1 || ends[0].ParentID != outer.ID() {
		t.Fatalf("inner span not parented: %+v", ends)
	}
}

func TestInertSpan(t *testing.T) {
	sp := Begin(Nop, ScopePass, "parse", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatalf("span on a disabled tracer must be inert")
	}
	if sp.WithExtra("k", "v") != sp {
		t.Fatalf("WithExtra must return the span")
	}
	ctx := WithSpan(context.Background(), sp)
	if CurrentSpan(ctx) != 0 {
		t.Fatalf("inert span became current")
	}
}

func TestFailKeptAtErrorLevel(t *testing.T) {
	rec := NewRecorder(8, LevelError)
	sp := Begin(rec, ScopePass, "parse-script", 7)
	if sp.ID() != 0 {
		t.Fatal("pass span opened at error level")
	}
	sp.Fail(errors.New("unexpected token"))

	evs := rec.Events()
	if len(evs) != 1 || evs[0].Kind != KindError || evs[0].Name != "parse-script" ||
		evs[0].Detail != "unexpected token" || evs[0].ParentID != 7 {
		t.Fatalf("events = %+v", evs)
	}
}

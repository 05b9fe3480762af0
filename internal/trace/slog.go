package trace

import (
	"context"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// SlogTracer forwards events to a slog.Logger. Span ends are logged at
// Info, points at Debug and failures at Error.
type SlogTracer struct {
	logger *slog.Logger
	level  Level
}

// NewSlogTracer fans events out to every handler.
func NewSlogTracer(level Level, handlers ...slog.Handler) *SlogTracer {
	return &SlogTracer{
		logger: slog.New(slogmulti.Fanout(handlers...)),
		level:  level,
	}
}

// Emit logs the event. Span begins are skipped: the end record carries the duration.
func (t *SlogTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) || ev.Kind == KindSpanBegin {
		return
	}

	lvl := slog.LevelDebug
	switch ev.Kind {
	case KindSpanEnd:
		lvl = slog.LevelInfo
	case KindError:
		lvl = slog.LevelError
	}

	ctx := context.Background()
	if !t.logger.Enabled(ctx, lvl) {
		return
	}

	attrs := make([]slog.Attr, 0, 4+len(ev.Extra))
	attrs = append(attrs, slog.String("scope", ev.Scope.String()))
	if ev.SpanID != 0 {
		attrs = append(attrs, slog.Uint64("span", ev.SpanID))
	}
	if ev.ParentID != 0 {
		attrs = append(attrs, slog.Uint64("parent", ev.ParentID))
	}
	if ev.Detail != "" {
		attrs = append(attrs, slog.String("detail", ev.Detail))
	}
	if ev.Kind == KindSpanEnd {
		attrs = append(attrs, slog.Duration("dur", ev.Dur))
	}
	for k, v := range ev.Extra {
		attrs = append(attrs, slog.String(k, v))
	}
	t.logger.LogAttrs(ctx, lvl, ev.Name, attrs...)
}

// Flush is a no-op: slog handlers write synchronously.
func (t *SlogTracer) Flush() error { return nil }

// Close is a no-op.
func (t *SlogTracer) Close() error { return nil }

func (t *SlogTracer) Level() Level { return t.level }

// Logger exposes the underlying logger for components that log directly.
func (t *SlogTracer) Logger() *slog.Logger { return t.logger }


package trace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	// Flush writes out buffered events.
	Flush() error
	// Close flushes and releases resources.
	Close() error
	Level() Level
}

// Enabled reports whether t records anything at all.
func Enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

func wants(t Tracer, scope Scope) bool {
	return Enabled(t) && t.Level().ShouldEmit(scope)
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop records nothing.
var Nop Tracer = nopTracer{}

type tee struct {
	tracers []Tracer
	level   Level
}

// Tee fans events out to every enabled tracer; its level is the most verbose
// of theirs. Each receiver filters by its own level.
func Tee(tracers ...Tracer) Tracer {
	var live []Tracer
	level := LevelOff
	for _, t := range tracers {
		if !Enabled(t) {
			continue
		}
		live = append(live, t)
		level = max(level, t.Level())
	}
	switch len(live) {
	case 0:
		return Nop
	case 1:
		return live[0]
	}
	return &tee{tracers: live, level: level}
}

func (t *tee) Emit(ev *Event) {
	for _, tr := range t.tracers {
		// каждому свою копию: приёмники проставляют Seq
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *tee) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		if err := tr.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

func (t *tee) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		if err := tr.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

func (t *tee) Level() Level { return t.level }

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("trace: %s", strings.Join(msgs, "; "))
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer      // if nil, OutputPath is used
	OutputPath string         // file path, "-" or "" for stderr
	Handlers   []slog.Handler // extra slog sinks; events are mirrored there too
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatNDJSON
		}
	}

	var stream *StreamTracer
	switch {
	case cfg.Output != nil:
		stream = NewStreamTracer(cfg.Output, cfg.Level, format)
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		stream = NewStreamTracer(os.Stderr, cfg.Level, format)
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		stream = NewStreamTracer(f, cfg.Level, format)
		stream.closer = f
	}
	if len(cfg.Handlers) == 0 {
		return stream, nil
	}
	return Tee(stream, NewSlogTracer(cfg.Level, cfg.Handlers...)), nil
}

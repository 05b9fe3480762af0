package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes formatted events to an io.Writer through a buffer.
// The first write error sticks: later events are dropped and Flush
// reports it.
type StreamTracer struct {
	mu      sync.Mutex
	w       *bufio.Writer
	closer  io.Closer // только если файл открыл сам New
	level   Level
	format  Format
	err     error
	dropped int
}

// NewStreamTracer creates a StreamTracer. The caller keeps ownership of w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		t.dropped++
		return
	}
	if _, err := t.w.Write(data); err != nil {
		t.err = err
		t.dropped++
		return
	}
	// ошибки видны сразу, не ждём Flush
	if ev.Kind == KindError {
		t.err = t.w.Flush()
	}
}

// Flush writes buffered events and returns the first write error.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = t.w.Flush()
	}
	return t.err
}

// Close flushes, and closes the output if New opened it.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }

// Dropped returns the number of events lost to write errors.
func (t *StreamTracer) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

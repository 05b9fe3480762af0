package trace

import (
	"io"
	"sync"
)

// Recorder keeps the last N accepted events in memory, e.g. to attach the
// trail of a failing file to a report.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	next   int // позиция следующей записи
	full   bool
	level  Level
}

// NewRecorder creates a Recorder; a non-positive capacity means 4096.
func NewRecorder(capacity int, level Level) *Recorder {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Recorder{events: make([]Event, capacity), level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if !r.level.accepts(ev) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	r.events[r.next] = stored
	r.next++
	if r.next == len(r.events) {
		r.next, r.full = 0, true
	}
}

// Events returns the kept events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.events[:r.next]...)
	}
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Find returns the kept events of kind k named name, oldest first.
func (r *Recorder) Find(k Kind, name string) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Kind == k && ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes the kept events to w.
func (r *Recorder) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Flush() error { return nil }
func (r *Recorder) Close() error { return nil }
func (r *Recorder) Level() Level { return r.level }

package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindError is an instant event that reports a failure.
	KindError
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindError:     "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers batch operations over many files.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one tokenize or parse call.
	ScopePass
	// ScopeFile covers per-file processing inside a batch.
	ScopeFile
	// ScopeRule covers grammar rule level events.
	ScopeRule
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeRule:   "rule",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивается приёмником
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0: корневой
	Name     string // "tokenize", "parse-script", "parse-file", ...
	Detail   string
	// Dur is set on span ends.
	Dur   time.Duration
	Extra map[string]string
}

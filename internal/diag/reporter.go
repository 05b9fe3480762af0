package diag

import "github.com/arhadthedev/embedded-ecmascript/internal/source"

// Reporter: минимальный контракт получения диагностик от лексера и парсера.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter: адаптер, который пишет в *Bag; nil Bag всё отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Report(code, sev, primary, msg, notes)
	}
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	f(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

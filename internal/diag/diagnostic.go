package diag

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

// Note points at a secondary span with a short explanation.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Err converts the diagnostic into a SourceCodeError.
func (d Diagnostic) Err() *SourceCodeError {
	return &SourceCodeError{Span: d.Primary, Message: d.Message, Code: d.Code}
}

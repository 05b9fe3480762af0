package diag

import (
	"fmt"

	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

// SourceCodeError is an error positioned in a source unit.
type SourceCodeError struct {
	Span    source.Span
	Message string
	Code    Code
}

// Error renders the 1-based inclusive character range, e.g.
// "error in characters #3-#5: unexpected token".
func (e *SourceCodeError) Error() string {
	return fmt.Sprintf("error in characters #%d-#%d: %s", e.Span.Start+1, e.Span.End, e.Message)
}

// Diagnostic converts the error back into an error-severity diagnostic.
func (e *SourceCodeError) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Span, e.Message)
}

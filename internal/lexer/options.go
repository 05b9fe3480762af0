package lexer

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// GoalPolicy picks the goal symbol for the next token of a stream. prev is
// the last non-trivia token, or nil at the start of the stream; offset is
// where the next token starts.
type GoalPolicy func(prev *token.Token, offset uint32) token.Goal

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
	Policy   GoalPolicy    // nil: DefaultGoalPolicy; используется Tokenize
	MaxDepth int           // предел вложенности правил, 0: по умолчанию
	Tracer   trace.Tracer  // nil: без трассировки
	Parent   uint64        // span, под которым открывается проход; 0: корень
}

func (lx *Lexer) report(d diag.Diagnostic) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}

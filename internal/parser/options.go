package parser

import (
	"fmt"
	"strings"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	g "github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// Goal selects the root production of a parse.
type Goal uint8

const (
	GoalScript Goal = iota
	GoalModule
)

func (goal Goal) String() string {
	switch goal {
	case GoalScript:
		return "script"
	case GoalModule:
		return "module"
	}
	return fmt.Sprintf("Goal(%d)", uint8(goal))
}

// ParseGoal accepts "script" or "module" in any case.
func ParseGoal(s string) (Goal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "script":
		return GoalScript, nil
	case "module":
		return GoalModule, nil
	}
	return 0, fmt.Errorf("unknown parse goal %q (want script or module)", s)
}

func (goal *Goal) UnmarshalText(text []byte) error {
	v, err := ParseGoal(string(text))
	if err != nil {
		return err
	}
	*goal = v
	return nil
}

// GoalFor picks Module for .mjs files and Script otherwise.
func GoalFor(f *source.File) Goal {
	if f.Flags&source.FileModule != 0 {
		return GoalModule
	}
	return GoalScript
}

// SkipPolicy decides what may appear between syntactic children.
type SkipPolicy uint8

const (
	// SkipWhiteSpace skips WhiteSpace only; a line terminator or a comment
	// between statements is an error.
	SkipWhiteSpace SkipPolicy = iota
	// SkipTrivia skips WhiteSpace, LineTerminator and Comment.
	SkipTrivia
)

func (p SkipPolicy) String() string {
	switch p {
	case SkipWhiteSpace:
		return "whitespace"
	case SkipTrivia:
		return "trivia"
	}
	return fmt.Sprintf("SkipPolicy(%d)", uint8(p))
}

func ParseSkipPolicy(s string) (SkipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whitespace":
		return SkipWhiteSpace, nil
	case "trivia":
		return SkipTrivia, nil
	}
	return 0, fmt.Errorf("unknown skip policy %q (want whitespace or trivia)", s)
}

func (p *SkipPolicy) UnmarshalText(text []byte) error {
	v, err := ParseSkipPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p SkipPolicy) matcher() g.Matcher {
	if p == SkipTrivia {
		return skipTrivia
	}
	return nil // разделитель грамматики по умолчанию
}

type Options struct {
	Skip     SkipPolicy
	MaxDepth int           // 0: grammar.DefaultMaxDepth
	Reporter diag.Reporter // nil: ошибка только возвращается
	Tracer   trace.Tracer  // nil: без трассировки
	Parent   uint64        // span, под которым открывается проход; 0: корень
}

func (o Options) engine() g.Options {
	return g.Options{MaxDepth: o.MaxDepth, Skip: o.Skip.matcher()}
}

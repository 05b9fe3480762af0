package token

import (
	"fmt"
	"strings"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

// Goal selects which lexical alternatives are legal at a position. The
// lexer never infers it: whoever tracks syntactic context picks it.
type Goal uint8

const (
	GoalDiv Goal = iota
	GoalRegExp
	GoalRegExpOrTemplateTail
	GoalTemplateTail
	GoalHashbangOrRegExp
)

var goalInfo = [...]struct {
	short string
	rule  ast.Rule
}{
	GoalDiv:                  {"div", ast.InputElementDiv},
	GoalRegExp:               {"regexp", ast.InputElementRegExp},
	GoalRegExpOrTemplateTail: {"regexp-or-template-tail", ast.InputElementRegExpOrTemplateTail},
	GoalTemplateTail:         {"template-tail", ast.InputElementTemplateTail},
	GoalHashbangOrRegExp:     {"hashbang-or-regexp", ast.InputElementHashbangOrRegExp},
}

// Goals lists every goal symbol.
func Goals() []Goal {
	return []Goal{GoalDiv, GoalRegExp, GoalRegExpOrTemplateTail, GoalTemplateTail, GoalHashbangOrRegExp}
}

// Rule returns the InputElement production of the goal.
func (g Goal) Rule() ast.Rule {
	if int(g) < len(goalInfo) {
		return goalInfo[g].rule
	}
	return ast.NoRule
}

func (g Goal) String() string {
	if int(g) < len(goalInfo) {
		return goalInfo[g].short
	}
	return fmt.Sprintf("Goal(%d)", uint8(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Goal) MarshalText() ([]byte, error) {
	if int(g) >= len(goalInfo) {
		return nil, fmt.Errorf("unknown goal %d", uint8(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Goal) UnmarshalText(text []byte) error {
	v, err := ParseGoal(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGoal accepts a short name ("div", "regexp", ...) or the production
// name ("InputElementDiv", ...), case-insensitively.
func ParseGoal(s string) (Goal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, info := range goalInfo {
		if name == info.short || name == strings.ToLower(info.rule.String()) {
			return Goal(i), nil
		}
	}
	return GoalDiv, fmt.Errorf("unknown goal symbol %q", s)
}

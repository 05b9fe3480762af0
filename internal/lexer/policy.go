package lexer

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

// FixedGoal returns a policy that always selects g.
func FixedGoal(g token.Goal) GoalPolicy {
	return func(*token.Token, uint32) token.Goal { return g }
}

// DefaultGoalPolicy is a heuristic for tokenising whole files without a
// parser: HashbangOrRegExp at offset 0, RegExp where an expression may
// start, Div after anything that can end one. It is not a substitute for
// syntactic context.
func DefaultGoalPolicy(prev *token.Token, offset uint32) token.Goal {
	if prev == nil {
		if offset == 0 {
			return token.GoalHashbangOrRegExp
		}
		return token.GoalRegExp
	}
	if endsExpression(prev) {
		return token.GoalDiv
	}
	return token.GoalRegExp
}

func endsExpression(t *token.Token) bool {
	switch t.Kind {
	case token.IdentifierName, token.PrivateIdentifier, token.NumericLiteral:
		return true
	case token.ReservedWord:
		switch t.Rule {
		case ast.KwThis, ast.KwSuper, ast.KwNull, ast.KwTrue, ast.KwFalse:
			return true
		}
		return false
	case token.Punctuator:
		switch t.Rule {
		case ast.ClosingParenthesis, ast.ClosingBracket, ast.ClosingBrace,
			ast.Increment, ast.Decrement:
			return true
		}
		return false
	}
	return false
}

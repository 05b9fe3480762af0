package parser

import (
	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	g "github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/lexer"
)

var syntactic, listRoots = buildSyntactic()

// startOfInput matches the empty string at offset 0 only.
func startOfInput(s *g.State) bool {
	return s.Pos() == 0
}

// listRoots holds the list productions, which are built inline by g.List
// and so have no table entry of their own.
func buildSyntactic() (*g.Grammar, map[ast.Rule]g.Matcher) {
	sx := g.New("syntactic")
	sx.SetSkip(lexer.Rule(ast.WhiteSpace))

	// #! допустим только в самом начале текста
	hashbang := g.Opt(g.Atomic(g.Seq(startOfInput, lexer.Rule(ast.HashbangComment))))

	sx.Define(ast.Script, g.Compound(g.Seq(hashbang, g.Opt(sx.Ref(ast.ScriptBody)), g.EOI)))
	sx.Define(ast.ScriptBody, statementList(sx, ast.ScriptParams))

	sx.Define(ast.Module, g.Compound(g.Seq(hashbang, g.Opt(sx.Ref(ast.ModuleBody)), g.EOI)))
	sx.Define(ast.ModuleBody, moduleItemList(sx))
	sx.Define(ast.ModuleItem, sx.RefParams(ast.StatementListItem, ast.ModuleParams))

	for _, p := range []ast.Params{ast.ScriptParams, ast.ModuleParams} {
		sx.DefineParams(ast.StatementListItem, p, sx.RefParams(ast.Statement, p))
		sx.DefineParams(ast.Statement, p, g.Choice(
			sx.Ref(ast.EmptyStatement),
			sx.Ref(ast.DebuggerStatement),
		))
	}

	sx.Define(ast.EmptyStatement, lexer.Rule(ast.Semicolon))
	sx.Define(ast.DebuggerStatement, g.Seq(lexer.Keyword(ast.KwDebugger), lexer.Rule(ast.Semicolon)))

	lists := map[ast.Rule]g.Matcher{
		ast.StatementList:  statementList(sx, ast.ScriptParams),
		ast.ModuleItemList: moduleItemList(sx),
	}
	return sx.MustValidate(), lists
}

// statementList builds StatementList[p] as a right-nested list of items.
func statementList(sx *g.Grammar, p ast.Params) g.Matcher {
	return g.List(ast.StatementList, p, sx.RefParams(ast.StatementListItem, p))
}

func moduleItemList(sx *g.Grammar) g.Matcher {
	return g.List(ast.ModuleItemList, 0, sx.Ref(ast.ModuleItem))
}

// skipTrivia also steps over line terminators and comments.
var skipTrivia = g.Choice(
	lexer.Rule(ast.WhiteSpace),
	lexer.Rule(ast.LineTerminator),
	lexer.Rule(ast.Comment),
)

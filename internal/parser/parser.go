package parser

import (
	"fmt"
	"strings"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// Result of parsing one file. Root is the zero Node when Err is set.
type Result struct {
	File *source.File
	Goal Goal
	Root ast.Node
	Err  error
}

func (r Result) OK() bool { return r.Err == nil }

// ParseScript parses the whole file as a Script.
func ParseScript(file *source.File, opts Options) Result {
	return ParseFile(file, GoalScript, opts)
}

// ParseModule parses the whole file as a Module.
func ParseModule(file *source.File, opts Options) Result {
	return ParseFile(file, GoalModule, opts)
}

// ParseFile: входная точка для разбора одного файла. A failure is returned
// as an *Error and, when opts.Reporter is set, also reported as a diagnostic.
func ParseFile(file *source.File, goal Goal, opts Options) Result {
	root := ast.Script
	if goal == GoalModule {
		root = ast.Module
	}
	span := trace.Begin(opts.Tracer, trace.ScopePass, "parse-"+goal.String(), opts.Parent)
	span.WithExtra("file", file.Path)

	res := Result{File: file, Goal: goal}
	node, err := syntactic.Parse(root, file.Content, opts.engine())
	if err != nil {
		res.Err = fail(file, err, opts, span.ID())
		span.Fail(res.Err)
		return res
	}
	res.Root = node
	span.End("ok")
	return res
}

// ParseRule matches a single syntactic production against the whole of src,
// e.g. ast.Statement for one statement. StatementList is parsed with the
// Script parameters. Errors are the raw engine errors.
func ParseRule(r ast.Rule, src []byte, opts Options) (ast.Node, error) {
	if list, ok := listRoots[r]; ok {
		return syntactic.ParseInline(r, list, src, opts.engine())
	}
	if !syntactic.Has(r) {
		return ast.Node{}, fmt.Errorf("parser: %s is not a syntactic rule", r)
	}
	return syntactic.Parse(r, src, opts.engine())
}

// Rules lists the productions ParseRule accepts.
func Rules() []ast.Rule {
	var out []ast.Rule
	for _, r := range ast.Rules() {
		if _, ok := listRoots[r]; ok || syntactic.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func fail(file *source.File, err error, opts Options, parent uint64) error {
	d := Describe(file, err)
	if opts.Reporter != nil {
		opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	if se, ok := err.(*grammar.SyntaxError); ok {
		names := make([]string, len(se.Expected))
		for i, r := range se.Expected {
			names[i] = r.String()
		}
		trace.Point(opts.Tracer, trace.ScopeRule, "expected", strings.Join(names, ","), parent)
	}
	return &Error{SourceCodeError: d.Err(), Cause: err}
}

// Items returns the top-level items of a parsed Script or Module in source
// order: StatementListItem nodes for a Script, ModuleItem nodes for a Module.
func Items(root *ast.Node) []ast.Node {
	switch root.Rule {
	case ast.Script:
		if body, ok := root.Child(ast.ScriptBody); ok {
			list, _ := body.Child(ast.StatementList)
			return ast.CollectList(list, ast.StatementList, ast.StatementListItem)
		}
	case ast.Module:
		if body, ok := root.Child(ast.ModuleBody); ok {
			list, _ := body.Child(ast.ModuleItemList)
			return ast.CollectList(list, ast.ModuleItemList, ast.ModuleItem)
		}
	}
	return nil
}

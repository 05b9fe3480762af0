package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
)

func isSpace(r rune) bool { return r == ' ' }

// toy: StatementList of ';' or "debugger;", пробелы между элементами.
func toyGrammar() *grammar.Grammar {
	g := grammar.New("toy")
	g.Define(ast.WhiteSpace, grammar.Char(isSpace))
	g.SetSkip(g.Ref(ast.WhiteSpace))
	g.Define(ast.Semicolon, grammar.Lit(";"))
	g.Define(ast.KwDebugger, grammar.Lit("debugger"))
	g.Define(ast.EmptyStatement, g.Ref(ast.Semicolon))
	g.Define(ast.DebuggerStatement, grammar.Seq(g.Ref(ast.KwDebugger), g.Ref(ast.Semicolon)))
	g.Define(ast.Statement, grammar.Choice(g.Ref(ast.EmptyStatement), g.Ref(ast.DebuggerStatement)))
	g.Define(ast.Script, grammar.Compound(grammar.Seq(
		grammar.Opt(grammar.List(ast.StatementList, 0, g.Ref(ast.Statement))),
		grammar.EOI,
	)))
	return g.MustValidate()
}

func TestListShapeAndSeparators(t *testing.T) {
	g := toyGrammar()
	src := []byte("; debugger ;;")
	root, err := g.Parse(ast.Script, src, grammar.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Start != 0 || int(root.End) != len(src) {
		t.Fatalf("root span %d..%d", root.Start, root.End)
	}
	list := &root.Children[0]
	if list.Rule != ast.StatementList {
		t.Fatalf("first child %s", list.Rule)
	}
	// правая вложенность: Statement WhiteSpace StatementList
	if len(list.Children) != 3 || list.Children[2].Rule != ast.StatementList {
		t.Fatalf("unexpected list shape: %v", list.Children)
	}
	items := ast.CollectList(list, ast.StatementList, ast.Statement)
	want := []ast.Rule{ast.EmptyStatement, ast.DebuggerStatement, ast.EmptyStatement}
	if len(items) != len(want) {
		t.Fatalf("got %d items", len(items))
	}
	for i, it := range items {
		if it.Children[0].Rule != want[i] {
			t.Fatalf("item %d: got %s, want %s", i, it.Children[0].Rule, want[i])
		}
	}
	// debugger ; внутри составного правила тоже разделён пробелом
	dbg := items[1].Children[0]
	if len(dbg.Children) != 3 || dbg.Children[1].Rule != ast.WhiteSpace {
		t.Fatalf("separator not kept inside DebuggerStatement: %v", dbg.Children)
	}
}

func TestEmptyInput(t *testing.T) {
	root, err := toyGrammar().Parse(ast.Script, nil, grammar.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.Children) != 0 || root.End != 0 {
		t.Fatalf("expected empty Script, got %v", root)
	}
}

func TestAtomicDisablesSkip(t *testing.T) {
	g := grammar.New("atomic")
	g.Define(ast.WhiteSpace, grammar.Char(isSpace))
	g.SetSkip(g.Ref(ast.WhiteSpace))
	g.Define(ast.Script, grammar.Seq(grammar.Lit("a"), grammar.Lit("b")))
	g.Define(ast.Module, grammar.Atomic(grammar.Seq(grammar.Lit("a"), grammar.Lit("b"))))
	g.MustValidate()

	if _, err := g.Parse(ast.Script, []byte("a  b"), grammar.Options{}); err != nil {
		t.Fatalf("compound: %v", err)
	}
	if _, err := g.Parse(ast.Module, []byte("a  b"), grammar.Options{}); !grammar.IsNoMatch(err) {
		t.Fatalf("atomic: expected no match, got %v", err)
	}
	if _, err := g.Parse(ast.Module, []byte("ab"), grammar.Options{}); err != nil {
		t.Fatalf("atomic: %v", err)
	}
}

func TestCombinators(t *testing.T) {
	digit := grammar.Range('0', '9')
	tests := []struct {
		name string
		m    grammar.Matcher
		in   string
		end  int
		ok   bool
	}{
		{"seq resets", grammar.Seq(grammar.Lit("ab"), grammar.Lit("c")), "abd", 0, false},
		{"choice order", grammar.Choice(grammar.Lit("a"), grammar.Lit("ab")), "ab", 1, true},
		{"choice longest first", grammar.Choice(grammar.Lit("ab"), grammar.Lit("a")), "ab", 2, true},
		{"star greedy", grammar.Star(digit), "123x", 3, true},
		{"star empty", grammar.Star(digit), "x", 0, true},
		{"plus needs one", grammar.Plus(digit), "x", 0, false},
		{"opt", grammar.Seq(grammar.Opt(grammar.Lit("-")), digit), "-1", 2, true},
		{"ahead zero width", grammar.Seq(grammar.Ahead(grammar.Lit("a")), grammar.Any), "a", 1, true},
		{"not ahead guard", grammar.Seq(grammar.Lit("?."), grammar.NotAhead(digit)), "?.5", 0, false},
		{"not ahead pass", grammar.Seq(grammar.Lit("?."), grammar.NotAhead(digit)), "?.a", 2, true},
		{"utf8 any", grammar.Seq(grammar.Any, grammar.EOI), "é", 2, true},
		{"utf8 char", grammar.Char(func(r rune) bool { return r == '\u2028' }), "\u2028", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grammar.New(tt.name)
			g.Define(ast.Script, tt.m)
			root, err := g.Match(ast.Script, []byte(tt.in), 0, grammar.Options{})
			if tt.ok != (err == nil) {
				t.Fatalf("ok=%v err=%v", tt.ok, err)
			}
			if err == nil && int(root.End) != tt.end {
				t.Fatalf("end=%d, want %d", root.End, tt.end)
			}
		})
	}
}

func TestMatchAtOffset(t *testing.T) {
	g := grammar.New("offset")
	g.Define(ast.DecimalDigit, grammar.Range('0', '9'))
	src := []byte("ab7")
	n, err := g.Match(ast.DecimalDigit, src, 2, grammar.Options{})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if n.Start != 2 || n.End != 3 {
		t.Fatalf("span %d..%d", n.Start, n.End)
	}
	if _, err := g.Match(ast.DecimalDigit, src, 9, grammar.Options{}); !grammar.IsNoMatch(err) {
		t.Fatalf("out of range offset: %v", err)
	}
}

func TestSyntaxErrorFurthest(t *testing.T) {
	g := toyGrammar()
	_, err := g.Parse(ast.Script, []byte(";; debugger x"), grammar.Options{})
	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Pos != 12 {
		t.Fatalf("furthest = %d, want 12", se.Pos)
	}
	if len(se.Expected) != 1 || se.Expected[0] != ast.Semicolon {
		t.Fatalf("expected = %v", se.Expected)
	}
	if grammar.IsInternal(err) {
		t.Fatalf("syntax error classified as internal")
	}

	_, err = g.Parse(ast.Script, []byte("; x"), grammar.Options{})
	if !errors.As(err, &se) || se.Pos != 2 {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(se.Error(), "EOI") {
		t.Fatalf("EOI missing from %q", se.Error())
	}
}

func TestTrailingInput(t *testing.T) {
	g := grammar.New("trailing")
	g.Define(ast.Semicolon, grammar.Lit(";"))
	_, err := g.Parse(ast.Semicolon, []byte(";;"), grammar.Options{})
	var se *grammar.SyntaxError
	if !errors.As(err, &se) || !se.Trailing() || se.Pos != 1 {
		t.Fatalf("expected trailing input error, got %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	g := grammar.New("nested")
	// Statement := "(" Statement? ")"
	g.Define(ast.Statement, grammar.Seq(grammar.Lit("("), grammar.Opt(g.Ref(ast.Statement)), grammar.Lit(")")))
	g.MustValidate()

	const n = 100
	src := []byte(strings.Repeat("(", n) + strings.Repeat(")", n))
	if _, err := g.Parse(ast.Statement, src, grammar.Options{}); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	_, err := g.Parse(ast.Statement, src, grammar.Options{MaxDepth: 10})
	var de *grammar.DepthError
	if !errors.As(err, &de) || de.Limit != 10 {
		t.Fatalf("expected DepthError, got %v", err)
	}
	if !grammar.IsInternal(err) || grammar.IsNoMatch(err) {
		t.Fatalf("depth error must be internal and not a mismatch")
	}
}

func TestLongListDoesNotHitDepth(t *testing.T) {
	g := toyGrammar()
	src := []byte(strings.Repeat(";", 100000))
	root, err := g.Parse(ast.Script, src, grammar.Options{MaxDepth: 16})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	items := ast.CollectList(&root.Children[0], ast.StatementList, ast.Statement)
	if len(items) != len(src) {
		t.Fatalf("got %d items", len(items))
	}
}

func TestParseInline(t *testing.T) {
	g := toyGrammar()
	list := grammar.List(ast.StatementList, 0, g.Ref(ast.Statement))
	src := []byte("; debugger;")
	root, err := g.ParseInline(ast.StatementList, list, src, grammar.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Rule != ast.StatementList || root.Start != 0 || int(root.End) != len(src) {
		t.Fatalf("root = %s", root)
	}
	if items := ast.CollectList(&root, ast.StatementList, ast.Statement); len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}

	if _, err := g.ParseInline(ast.StatementList, list, []byte("x"), grammar.Options{}); !grammar.IsNoMatch(err) {
		t.Fatalf("expected a mismatch, got %v", err)
	}
	pair := grammar.Seq(g.Ref(ast.Semicolon), g.Ref(ast.Semicolon))
	if _, err := g.ParseInline(ast.StatementList, pair, []byte(";;"), grammar.Options{}); !grammar.IsInternal(err) {
		t.Fatalf("two root nodes must be internal, got %v", err)
	}
}

func TestBrokenGrammar(t *testing.T) {
	g := grammar.New("broken")
	g.Define(ast.Script, g.Ref(ast.StatementList))
	g.Define(ast.Module, grammar.Lit("x"))
	g.Define(ast.Module, grammar.Lit("y"))
	err := g.Validate()
	if !errors.Is(err, grammar.ErrBrokenGrammar) {
		t.Fatalf("expected ErrBrokenGrammar, got %v", err)
	}
	if !strings.Contains(err.Error(), "StatementList") || !strings.Contains(err.Error(), "more than once") {
		t.Fatalf("unexpected message %q", err)
	}
	_, err = g.Parse(ast.Script, nil, grammar.Options{})
	if !grammar.IsInternal(err) {
		t.Fatalf("undefined reference must be internal, got %v", err)
	}
	if _, err := g.Parse(ast.Statement, nil, grammar.Options{}); !grammar.IsInternal(err) {
		t.Fatalf("undefined root must be internal, got %v", err)
	}
}

func TestConcurrentParses(t *testing.T) {
	g := toyGrammar()
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := g.Parse(ast.Script, []byte("; debugger; ;"), grammar.Options{})
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("parse: %v", err)
		}
	}
}

package ast_test

import (
	"strings"
	"testing"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

func leaf(r ast.Rule, start, end uint32) ast.Node {
	return ast.Node{Rule: r, Start: start, End: end}
}

// rightNested строит StatementList вида Item (List) глубиной n без рекурсии.
func rightNested(n int) ast.Node {
	end := uint32(n)
	cur := ast.Node{
		Rule:     ast.StatementList,
		Start:    end - 1,
		End:      end,
		Children: []ast.Node{leaf(ast.StatementListItem, end-1, end)},
	}
	for i := n - 2; i >= 0; i-- {
		start := uint32(i)
		cur = ast.Node{
			Rule:     ast.StatementList,
			Start:    start,
			End:      end,
			Children: []ast.Node{leaf(ast.StatementListItem, start, start+1), cur},
		}
	}
	return cur
}

func TestCollectListRightNested(t *testing.T) {
	root := rightNested(3)
	items := ast.CollectList(&root, ast.StatementList, ast.StatementListItem)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, it := range items {
		if it.Start != uint32(i) {
			t.Fatalf("item %d starts at %d", i, it.Start)
		}
	}
}

func TestCollectListDeep(t *testing.T) {
	const depth = 200000
	root := rightNested(depth)
	items := ast.CollectList(&root, ast.StatementList, ast.StatementListItem)
	if len(items) != depth {
		t.Fatalf("got %d items, want %d", len(items), depth)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Start <= items[i-1].Start {
			t.Fatalf("items out of order at %d", i)
		}
	}
}

func TestCollectListLeftNestedAndSeparators(t *testing.T) {
	inner := ast.Node{
		Rule: ast.ModuleItemList, Start: 0, End: 1,
		Children: []ast.Node{leaf(ast.ModuleItem, 0, 1)},
	}
	root := ast.Node{
		Rule: ast.ModuleItemList, Start: 0, End: 3,
		Children: []ast.Node{inner, leaf(ast.WhiteSpace, 1, 2), leaf(ast.ModuleItem, 2, 3)},
	}
	items := ast.CollectList(&root, ast.ModuleItemList, ast.ModuleItem)
	if len(items) != 2 || items[0].Start != 0 || items[1].Start != 2 {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestCollectListEdgeCases(t *testing.T) {
	if got := ast.CollectList(nil, ast.StatementList, ast.StatementListItem); got != nil {
		t.Fatalf("nil root: got %v", got)
	}
	single := leaf(ast.StatementListItem, 0, 1)
	if got := ast.CollectList(&single, ast.StatementList, ast.StatementListItem); len(got) != 1 {
		t.Fatalf("item root: got %v", got)
	}
	other := leaf(ast.Script, 0, 0)
	if got := ast.CollectList(&other, ast.StatementList, ast.StatementListItem); got != nil {
		t.Fatalf("foreign root: got %v", got)
	}
}

func TestWalkOrderAndFind(t *testing.T) {
	root := rightNested(4)
	var starts []uint32
	ast.Walk(&root, func(n *ast.Node, _ int) bool {
		if n.Rule == ast.StatementListItem {
			starts = append(starts, n.Start)
		}
		return true
	})
	for i, s := range starts {
		if s != uint32(i) {
			t.Fatalf("walk order broken: %v", starts)
		}
	}
	if got := ast.Count(&root, ast.StatementList); got != 4 {
		t.Fatalf("Count = %d, want 4", got)
	}
	if n := ast.Find(&root, ast.StatementListItem); n == nil || n.Start != 0 {
		t.Fatalf("Find returned %v", n)
	}
	if n := ast.Find(&root, ast.Module); n != nil {
		t.Fatalf("Find of absent rule returned %v", n)
	}
}

func TestLeafAndPath(t *testing.T) {
	n := ast.Node{
		Rule: ast.InputElementDiv, End: 4,
		Children: []ast.Node{{
			Rule: ast.CommonToken, End: 4,
			Children: []ast.Node{{
				Rule: ast.Punctuator, End: 4,
				Children: []ast.Node{{
					Rule: ast.OtherPunctuator, End: 4,
					Children: []ast.Node{leaf(ast.UnsignedRightShiftAssignment, 0, 4)},
				}},
			}},
		}},
	}
	if got := n.Leaf().Rule; got != ast.UnsignedRightShiftAssignment {
		t.Fatalf("Leaf = %s", got)
	}
	if path := n.Path(); len(path) != 5 || path[3] != ast.OtherPunctuator {
		t.Fatalf("Path = %v", path)
	}
	if !n.Has(ast.Punctuator) || n.Has(ast.ReservedWord) {
		t.Fatalf("Has mismatch")
	}
	if text := n.Text([]byte(">>>=")); string(text) != ">>>=" {
		t.Fatalf("Text = %q", text)
	}
}

func TestParamsString(t *testing.T) {
	tests := []struct {
		p    ast.Params
		want string
	}{
		{ast.ScriptParams, "[~Yield,~Await,~Return]"},
		{ast.ModuleParams, "[~Yield,+Await,~Return]"},
		{ast.ParamYield | ast.ParamReturn, "[+Yield,~Await,+Return]"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%d: got %s, want %s", tt.p, got, tt.want)
		}
	}
	if ast.ModuleParams.Without(ast.ParamAwait) != ast.ScriptParams {
		t.Fatalf("Without did not clear the flag")
	}
}

func TestRuleNames(t *testing.T) {
	for _, r := range ast.Rules() {
		if !r.Valid() {
			t.Fatalf("rule %d reported invalid", r)
		}
		name := r.String()
		if name == "" || strings.HasPrefix(name, "Rule(") {
			t.Fatalf("rule %d has no name", r)
		}
	}
	if ast.KwInstanceof.String() != "Instanceof" || !ast.KwInstanceof.IsKeyword() {
		t.Fatalf("keyword naming broken")
	}
	if !ast.ClosingBrace.IsPunctuatorTerminal() || ast.KwAwait.IsPunctuatorTerminal() {
		t.Fatalf("punctuator range broken")
	}
}

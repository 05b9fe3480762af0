package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

// TreeOpts configures tree output.
type TreeOpts struct {
	// FlattenLists prints recursive list productions as one node with all
	// items as children.
	FlattenLists bool
	// HideSeparators drops WhiteSpace, LineTerminator and Comment nodes.
	HideSeparators bool
	// MaxText limits quoted leaf text, 0 means 32.
	MaxText int
}

// NodeJSON is the JSON form of a parse node.
type NodeJSON struct {
	Rule     string     `json:"rule"`
	Params   string     `json:"params,omitempty"`
	Start    uint32     `json:"start"`
	End      uint32     `json:"end"`
	Text     string     `json:"text,omitempty"`
	Children []NodeJSON `json:"children,omitempty"`
}

var listItems = map[ast.Rule]ast.Rule{
	ast.StatementList:  ast.StatementListItem,
	ast.ModuleItemList: ast.ModuleItem,
}

func isSeparator(r ast.Rule) bool {
	switch r {
	case ast.WhiteSpace, ast.LineTerminator, ast.Comment:
		return true
	}
	return false
}

// children returns what the tree output shows below n.
func children(n *ast.Node, opts TreeOpts) []ast.Node {
	if item, ok := listItems[n.Rule]; ok && opts.FlattenLists {
		return ast.CollectList(n, n.Rule, item)
	}
	if !opts.HideSeparators {
		return n.Children
	}
	out := make([]ast.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !isSeparator(c.Rule) {
			out = append(out, c)
		}
	}
	return out
}

func leafText(n *ast.Node, src []byte, limit int) string {
	if !n.IsTerminal() || src == nil {
		return ""
	}
	if limit <= 0 {
		limit = 32
	}
	text := string(n.Text(src))
	if len(text) > limit {
		text = text[:limit] + "..."
	}
	return text
}

// FormatTreePretty prints root as an indented tree, one node per line.
// The walk is iterative, so deep right-nested lists are fine.
func FormatTreePretty(w io.Writer, root *ast.Node, src []byte, opts TreeOpts) error {
	type frame struct {
		n     *ast.Node
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", f.depth))
		sb.WriteString(f.n.Rule.String())
		if f.n.Params != 0 {
			sb.WriteString(f.n.Params.String())
		}
		fmt.Fprintf(&sb, " [%d,%d)", f.n.Start, f.n.End)
		if text := leafText(f.n, src, opts.MaxText); text != "" {
			fmt.Fprintf(&sb, " %q", text)
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		kids := children(f.n, opts)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{&kids[i], f.depth + 1})
		}
	}
	return nil
}

// BuildTreeOutput converts root into its JSON form. Like FormatTreePretty
// it walks with an explicit stack.
func BuildTreeOutput(root *ast.Node, src []byte, opts TreeOpts) NodeJSON {
	type frame struct {
		n   *ast.Node
		dst *NodeJSON
	}
	var out NodeJSON
	stack := []frame{{root, &out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		*f.dst = NodeJSON{
			Rule:  f.n.Rule.String(),
			Start: f.n.Start,
			End:   f.n.End,
			Text:  leafText(f.n, src, opts.MaxText),
		}
		if f.n.Params != 0 {
			f.dst.Params = f.n.Params.String()
		}
		kids := children(f.n, opts)
		if len(kids) == 0 {
			continue
		}
		// слайс не растёт, указатели на элементы стабильны
		f.dst.Children = make([]NodeJSON, len(kids))
		for i := range kids {
			stack = append(stack, frame{&kids[i], &f.dst.Children[i]})
		}
	}
	return out
}

// FormatTreeJSON writes root as indented JSON. Lists are always flattened:
// nested they would put one JSON level per item, past what decoders accept.
func FormatTreeJSON(w io.Writer, root *ast.Node, src []byte, opts TreeOpts) error {
	opts.FlattenLists = true
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(root, src, opts))
}

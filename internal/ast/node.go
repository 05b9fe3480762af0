package ast

import (
	"fmt"

	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

// Node is the result of a successful rule match. Start and End are byte
// offsets into the matched buffer, End exclusive.
type Node struct {
	Rule     Rule
	Start    uint32
	End      uint32
	Params   Params
	Children []Node
}

// Len returns the number of bytes the node spans.
func (n *Node) Len() uint32 {
	return n.End - n.Start
}

// IsTerminal reports whether the node has no children.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}

// Text returns the source bytes covered by the node.
func (n *Node) Text(src []byte) []byte {
	if int(n.End) > len(src) || n.Start > n.End {
		return nil
	}
	return src[n.Start:n.End]
}

// Span converts the node range into a span of the given file.
func (n *Node) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: n.Start, End: n.End}
}

// Child returns the first direct child produced by rule r.
func (n *Node) Child(r Rule) (*Node, bool) {
	for i := range n.Children {
		if n.Children[i].Rule == r {
			return &n.Children[i], true
		}
	}
	return nil, false
}

// Leaf descends through single-child chains and returns the innermost node.
// For a token node (InputElementDiv -> CommonToken -> Punctuator -> ...) this
// is the terminal that names the token.
func (n *Node) Leaf() *Node {
	cur := n
	for len(cur.Children) == 1 {
		cur = &cur.Children[0]
	}
	return cur
}

// Path returns the rules from n down to Leaf, n first.
func (n *Node) Path() []Rule {
	out := []Rule{n.Rule}
	cur := n
	for len(cur.Children) == 1 {
		cur = &cur.Children[0]
		out = append(out, cur.Rule)
	}
	return out
}

// Has reports whether rule r appears on the single-child chain of n.
func (n *Node) Has(r Rule) bool {
	cur := n
	for {
		if cur.Rule == r {
			return true
		}
		if len(cur.Children) != 1 {
			return false
		}
		cur = &cur.Children[0]
	}
}

func (n Node) String() string {
	if n.Params != 0 {
		return fmt.Sprintf("%s%s@%d..%d", n.Rule, n.Params, n.Start, n.End)
	}
	return fmt.Sprintf("%s@%d..%d", n.Rule, n.Start, n.End)
}

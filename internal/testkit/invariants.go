package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

// CheckNodeInvariants runs the structural checks every parse tree must pass:
// 1) root span is within the source bounds
// 2) every child is a valid rule and lies inside its parent
// 3) siblings are in source order and do not overlap
// 4) a node with children is exactly their union: no gaps, no uncovered
// literal text (separators are children too)
func CheckNodeInvariants(root *ast.Node, src []byte) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Start > root.End || root.End > size {
		return fmt.Errorf("root %s span [%d,%d) outside source of %d bytes", root.Rule, root.Start, root.End, size)
	}

	// обход без рекурсии: списки бывают очень длинными
	stack := []*ast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.Rule.Valid() {
			return fmt.Errorf("node at [%d,%d) has invalid rule %d", n.Start, n.End, n.Rule)
		}
		prevEnd := n.Start
		for i := range n.Children {
			c := &n.Children[i]
			if c.Start > c.End {
				return fmt.Errorf("%s: inverted span [%d,%d)", c.Rule, c.Start, c.End)
			}
			if c.Start < n.Start || c.End > n.End {
				return fmt.Errorf("%s [%d,%d) is outside parent %s [%d,%d)", c.Rule, c.Start, c.End, n.Rule, n.Start, n.End)
			}
			if c.Start < prevEnd {
				return fmt.Errorf("%s at %d overlaps its previous sibling ending at %d", c.Rule, c.Start, prevEnd)
			}
			if c.Start != prevEnd {
				return fmt.Errorf("%s: gap [%d,%d) before child %s", n.Rule, prevEnd, c.Start, c.Rule)
			}
			prevEnd = c.End
			stack = append(stack, c)
		}
		if len(n.Children) > 0 && prevEnd != n.End {
			return fmt.Errorf("%s: gap [%d,%d) after its last child", n.Rule, prevEnd, n.End)
		}
	}
	return nil
}

// CheckTokenStream verifies that a token stream covers src exactly: tokens
// are contiguous, their text matches the source, and the stream ends with
// a single empty EOF token.
func CheckTokenStream(toks []token.Token, src []byte) error {
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var off uint32
	for i, tok := range toks {
		if tok.Span.Start != off {
			return fmt.Errorf("token %d (%s) starts at %d, want %d", i, tok.Kind, tok.Span.Start, off)
		}
		if tok.Span.End < tok.Span.Start || tok.Span.End > size {
			return fmt.Errorf("token %d (%s) has bad span [%d,%d)", i, tok.Kind, tok.Span.Start, tok.Span.End)
		}
		if got := string(src[tok.Span.Start:tok.Span.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, got)
		}
		last := i == len(toks)-1
		if (tok.Kind == token.EOF) != last {
			return fmt.Errorf("token %d: EOF must be last and only last", i)
		}
		if !last && tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) is empty", i, tok.Kind)
		}
		off = tok.Span.End
	}
	if off != size {
		return fmt.Errorf("stream ends at %d, source has %d bytes", off, size)
	}
	return nil
}

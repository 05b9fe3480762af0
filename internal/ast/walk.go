package ast

// WalkFunc is called for every node in pre-order. Returning false skips the
// node's children.
type WalkFunc func(n *Node, depth int) bool

type walkItem struct {
	n     *Node
	depth int
}

// Walk visits root and its descendants in source order. It keeps its own
// stack, so tree depth is bounded only by memory.
func Walk(root *Node, fn WalkFunc) {
	if root == nil {
		return
	}
	stack := []walkItem{{n: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.n, it.depth) {
			continue
		}
		for i := len(it.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, walkItem{n: &it.n.Children[i], depth: it.depth + 1})
		}
	}
}

// Find returns the first node in pre-order produced by rule r.
func Find(root *Node, r Rule) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Rule == r {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns how many nodes in the tree were produced by rule r.
func Count(root *Node, r Rule) int {
	total := 0
	Walk(root, func(n *Node, _ int) bool {
		if n.Rule == r {
			total++
		}
		return true
	})
	return total
}

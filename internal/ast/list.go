package ast

// CollectList flattens a recursive list production into its items in source
// order. The list may be nested to the right (Item List), to the left
// (List Item) or be flat; children that are neither list nor item nodes
// (skipped separators) are ignored. Nesting depth is not limited: the walk
// uses an explicit stack.
//
// If n itself is an item node it is returned as a one-element list.
func CollectList(n *Node, list, item Rule) []Node {
	if n == nil {
		return nil
	}
	if n.Rule == item {
		return []Node{*n}
	}
	if n.Rule != list {
		return nil
	}
	var items []Node
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.Rule {
		case item:
			items = append(items, *cur)
		case list:
			// в обратном порядке, чтобы снимать со стека слева направо
			for i := len(cur.Children) - 1; i >= 0; i-- {
				c := &cur.Children[i]
				if c.Rule == item || c.Rule == list {
					stack = append(stack, c)
				}
			}
		}
	}
	return items
}

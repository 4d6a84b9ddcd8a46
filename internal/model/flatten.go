package model

// Flatten converts the tree into the visible sequence: depth-first pre-order,
// with a node's children following it only when the node is expanded. Nodes of
// collapsed branches keep their children; they are skipped, not pruned.
func Flatten[ID comparable](roots []*Node[ID], expanded Set[ID]) []FlatNode[ID] {
	type frame struct {
		node  *Node[ID]
		level int
	}

	var flat []FlatNode[ID]
	stack := make([]frame, 0, len(roots))

	// Push in reverse so the first root is popped first
	rootOrder := ordered(roots)
	for i := len(rootOrder) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: rootOrder[i], level: 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		flat = append(flat, FlatNode[ID]{Node: top.node, Level: top.level})

		if top.node.Children == nil || !expanded.Has(top.node.ID) {
			continue
		}
		children := ordered(top.node.Children)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], level: top.level + 1})
		}
	}

	return flat
}

// IndexOf returns the position of id in the visible sequence, or -1
func IndexOf[ID comparable](flat []FlatNode[ID], id ID) int {
	for i, fn := range flat {
		if fn.Node.ID == id {
			return i
		}
	}
	return -1
}

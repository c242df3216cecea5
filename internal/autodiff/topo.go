package autodiff

// TopoSort returns every node reachable from root through operand edges, each
// exactly once, with every node placed after all of its operands. Root is last.
//
// The traversal is an iterative post-order DFS; shared subgraphs are visited once.
func TopoSort(root *Value) []*Value {
	type frame struct {
		node *Value
		next int // Index of the next operand to descend into
	}

	order := make([]*Value, 0, 16)
	visited := map[*Value]struct{}{root: {}}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.operands) {
			child := top.node.operands[top.next]
			top.next++
			if _, seen := visited[child]; !seen {
				visited[child] = struct{}{}
				stack = append(stack, frame{node: child})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order
}

package autodiff

// Backward computes d(v)/d(n) for every node n reachable from v.
//
// Algorithm:
//  1. Order the graph with TopoSort (v last)
//  2. Seed v's gradient with 1
//  3. Walk the order in reverse; each node adds its rule's contributions into
//     its operands' gradients
//
// Reverse order guarantees every consumer of a node has finished contributing
// before the node propagates further. Gradients are added, never overwritten
// (except the seed), so calling Backward twice without ZeroGrad sums both passes.
// Data is never modified.
func (v *Value) Backward() {
	order := TopoSort(v)

	v.grad = 1

	in := make([]float64, 0, 2)
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.IsLeaf() {
			continue
		}

		in = in[:0]
		for _, o := range n.operands {
			in = append(in, o.data)
		}

		contribs := n.op.Backward(n.grad, n.data, in)
		for j, o := range n.operands {
			o.grad += contribs[j]
		}
	}
}

// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a Value allocates a new Value that records its
// operands and the rule (see package ops) describing how gradient flows back to
// them. The operand relation forms a DAG: a node can only reference nodes that
// existed when it was built.
//
// Architecture:
//   - Value: node holding data, an accumulated gradient, operands and a rule
//   - Graph builder: Add, Mul, Pow, ReLU and the derived Neg, Sub, Div
//   - TopoSort: post-order DFS over operand edges
//   - Backward: seeds the root gradient with 1 and visits nodes in reverse order
//
// Usage:
//
//	a := autodiff.New(-2)
//	b := autodiff.New(3)
//	f := a.Mul(b).Mul(a.Add(b))
//	f.Backward()
//	fmt.Println(a.Grad(), b.Grad()) // -3 -8
//
// Gradients accumulate across Backward calls. Reset them with ZeroGrad or
// ZeroGrads before a new pass when accumulation is not wanted.
package autodiff

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff/ops"
)

// Value is a scalar node of the computation graph.
//
// data is fixed once the node is built (leaves excepted, see SetData).
// grad is only written by Backward and the zeroing helpers.
type Value struct {
	data     float64
	grad     float64
	operands []*Value     // Producers of this value, in rule order
	op       ops.Operation // Local derivative rule
}

var leafOp ops.Operation = ops.NewLeafOp()

// New creates a leaf Value holding x.
func New(x float64) *Value {
	return &Value{
		data: x,
		op:   leafOp,
	}
}

// newNode evaluates op over operands and returns the fully linked result.
func newNode(op ops.Operation, operands ...*Value) *Value {
	if len(operands) != op.Arity() {
		panic(fmt.Sprintf("%s: expected %d operands, got %d", op.Kind(), op.Arity(), len(operands)))
	}
	in := make([]float64, len(operands))
	for i, o := range operands {
		if o == nil {
			panic(fmt.Sprintf("%s: nil operand at position %d", op.Kind(), i))
		}
		in[i] = o.data
	}
	return &Value{
		data:     op.Forward(in),
		operands: operands,
		op:       op,
	}
}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// Grad returns the accumulated gradient of the last Backward root with respect to v.
func (v *Value) Grad() float64 {
	return v.grad
}

// SetData overwrites the value of a leaf.
//
// This is how optimizers update parameters between passes. Nodes built from the
// leaf before the update keep their old values. Panics on a computed node.
func (v *Value) SetData(x float64) {
	if !v.IsLeaf() {
		panic(fmt.Sprintf("set data: value produced by %q is not a leaf", v.op.Label()))
	}
	v.data = x
}

// ZeroGrad resets the gradient to 0.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// ZeroGrads resets the gradient of every given value.
func ZeroGrads(vs ...*Value) {
	for _, v := range vs {
		v.grad = 0
	}
}

// Op returns the rule that produced v.
func (v *Value) Op() ops.Operation {
	return v.op
}

// Label returns the diagnostic label of the producing operation ("" for leaves).
func (v *Value) Label() string {
	return v.op.Label()
}

// Operands returns the values v was computed from. The slice must not be modified.
func (v *Value) Operands() []*Value {
	return v.operands
}

// IsLeaf reports whether v has no operands.
func (v *Value) IsLeaf() bool {
	return len(v.operands) == 0
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%g, grad=%g)", v.data, v.grad)
}

// Package ops defines the local derivative rules used by scalar automatic differentiation.
//
// Every node of the computation graph carries exactly one Operation, which provides:
//   - Forward: the node's value computed from its operand values
//   - Backward: the contribution to each operand's gradient given the node's gradient
//
// Supported operations:
//   - LeafOp: input or parameter, no operands
//   - AddOp: a + b (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: a * b (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: a ** k for a constant k (d(a**k)/da = k * a**(k-1))
//   - ReLUOp: max(0, a) (d(ReLU(a))/da = 1 if output > 0, else 0)
//
// Rules operate on plain float64 values and never hold references to graph nodes,
// so each one can be exercised without building a graph.
package ops

// Kind identifies which rule produced a node.
type Kind uint8

// Operation kinds.
const (
	KindLeaf Kind = iota
	KindAdd
	KindMul
	KindPow
	KindReLU
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindAdd:
		return "Add"
	case KindMul:
		return "Mul"
	case KindPow:
		return "Pow"
	case KindReLU:
		return "ReLU"
	default:
		return "Unknown"
	}
}

// Operation is the local derivative rule of a graph node.
type Operation interface {
	// Kind returns the tag of this rule.
	Kind() Kind

	// Label returns the diagnostic label ("", "+", "*", "**k", "relu").
	Label() string

	// Forward computes the node value from operand values.
	Forward(in []float64) float64

	// Backward returns the gradient contribution for each operand, in operand order.
	//
	// Example for MulOp:
	//   in: [a, b]
	//   outGrad: dL/d(a*b)
	//   returns: [b * outGrad, a * outGrad]
	Backward(outGrad, out float64, in []float64) []float64

	// Arity returns the number of operands the rule expects.
	Arity() int
}

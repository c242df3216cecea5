package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{}
}

// Kind returns KindAdd.
func (op *AddOp) Kind() Kind { return KindAdd }

// Label returns "+".
func (op *AddOp) Label() string { return "+" }

// Arity returns 2.
func (op *AddOp) Arity() int { return 2 }

// Forward returns a + b.
func (op *AddOp) Forward(in []float64) float64 {
	return in[0] + in[1]
}

// Backward computes operand gradients for addition.
// The gradient flows unchanged to both operands.
func (op *AddOp) Backward(outGrad, _ float64, _ []float64) []float64 {
	return []float64{outGrad, outGrad}
}

package ops

// MulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{}
}

// Kind returns KindMul.
func (op *MulOp) Kind() Kind { return KindMul }

// Label returns "*".
func (op *MulOp) Label() string { return "*" }

// Arity returns 2.
func (op *MulOp) Arity() int { return 2 }

// Forward returns a * b.
func (op *MulOp) Forward(in []float64) float64 {
	return in[0] * in[1]
}

// Backward computes operand gradients for multiplication.
func (op *MulOp) Backward(outGrad, _ float64, in []float64) []float64 {
	a, b := in[0], in[1]
	return []float64{b * outGrad, a * outGrad}
}

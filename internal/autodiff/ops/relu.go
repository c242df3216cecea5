package ops

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, a).
//
// Backward pass:
//   - d(ReLU(a))/da = 1 if output > 0, else 0
//
// An input of exactly zero blocks the gradient. NaN passes through.
type ReLUOp struct{}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp() *ReLUOp {
	return &ReLUOp{}
}

// Kind returns KindReLU.
func (op *ReLUOp) Kind() Kind { return KindReLU }

// Label returns "relu".
func (op *ReLUOp) Label() string { return "relu" }

// Arity returns 1.
func (op *ReLUOp) Arity() int { return 1 }

// Forward returns max(0, a).
func (op *ReLUOp) Forward(in []float64) float64 {
	if in[0] < 0 {
		return 0
	}
	return in[0]
}

// Backward computes the operand gradient for ReLU using the output as the mask.
func (op *ReLUOp) Backward(outGrad, out float64, _ []float64) []float64 {
	if out > 0 {
		return []float64{outGrad}
	}
	return []float64{0}
}

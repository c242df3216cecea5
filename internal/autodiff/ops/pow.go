package ops

import (
	"math"
	"strconv"
)

// PowOp represents raising to a constant power: output = a ** k.
//
// The exponent is fixed when the node is built and is not itself differentiated.
//
// Backward pass:
//   - d(a**k)/da = k * a**(k-1), so grad_a = outputGrad * k * a**(k-1)
type PowOp struct {
	exponent float64
}

// NewPowOp creates a new PowOp with the given exponent.
func NewPowOp(exponent float64) *PowOp {
	return &PowOp{exponent: exponent}
}

// Exponent returns the constant exponent k.
func (op *PowOp) Exponent() float64 { return op.exponent }

// Kind returns KindPow.
func (op *PowOp) Kind() Kind { return KindPow }

// Label returns "**k", e.g. "**2" or "**-1".
func (op *PowOp) Label() string {
	return "**" + strconv.FormatFloat(op.exponent, 'g', -1, 64)
}

// Arity returns 1.
func (op *PowOp) Arity() int { return 1 }

// Forward returns a ** k.
func (op *PowOp) Forward(in []float64) float64 {
	return math.Pow(in[0], op.exponent)
}

// Backward computes the operand gradient for a constant power.
func (op *PowOp) Backward(outGrad, _ float64, in []float64) []float64 {
	k := op.exponent
	return []float64{k * math.Pow(in[0], k-1) * outGrad}
}

package ops_test

import (
	"math"
	"testing"

	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Leaf", ops.KindLeaf.String())
	assert.Equal(t, "Add", ops.KindAdd.String())
	assert.Equal(t, "Mul", ops.KindMul.String())
	assert.Equal(t, "Pow", ops.KindPow.String())
	assert.Equal(t, "ReLU", ops.KindReLU.String())
	assert.Equal(t, "Unknown", ops.Kind(42).String())
}

func TestOperations_Metadata(t *testing.T) {
	tests := []struct {
		name  string
		op    ops.Operation
		kind  ops.Kind
		label string
		arity int
	}{
		{"leaf", ops.NewLeafOp(), ops.KindLeaf, "", 0},
		{"add", ops.NewAddOp(), ops.KindAdd, "+", 2},
		{"mul", ops.NewMulOp(), ops.KindMul, "*", 2},
		{"square", ops.NewPowOp(2), ops.KindPow, "**2", 1},
		{"reciprocal", ops.NewPowOp(-1), ops.KindPow, "**-1", 1},
		{"sqrt", ops.NewPowOp(0.5), ops.KindPow, "**0.5", 1},
		{"relu", ops.NewReLUOp(), ops.KindReLU, "relu", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.op.Kind())
			assert.Equal(t, tt.label, tt.op.Label())
			assert.Equal(t, tt.arity, tt.op.Arity())
		})
	}
}

func TestAddOp(t *testing.T) {
	op := ops.NewAddOp()
	in := []float64{-2, 3}

	assert.Equal(t, 1.0, op.Forward(in))
	assert.Equal(t, []float64{0.5, 0.5}, op.Backward(0.5, 1, in))
}

func TestMulOp(t *testing.T) {
	op := ops.NewMulOp()
	in := []float64{-2, 3}

	assert.Equal(t, -6.0, op.Forward(in))
	// grad_a = b * outGrad, grad_b = a * outGrad
	assert.Equal(t, []float64{6, -4}, op.Backward(2, -6, in))
}

func TestPowOp(t *testing.T) {
	tests := []struct {
		name     string
		a, k     float64
		wantOut  float64
		wantGrad float64
	}{
		{"square", 3, 2, 9, 6},
		{"cube negative base", -2, 3, -8, 12},
		{"reciprocal", 4, -1, 0.25, -1.0 / 16},
		{"sqrt", 9, 0.5, 3, 1.0 / 6},
		{"zero power", 5, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := ops.NewPowOp(tt.k)
			in := []float64{tt.a}
			out := op.Forward(in)
			assert.InDelta(t, tt.wantOut, out, 1e-12)

			grads := op.Backward(1, out, in)
			require.Len(t, grads, 1)
			assert.InDelta(t, tt.wantGrad, grads[0], 1e-12)
		})
	}
}

func TestPowOp_Exponent(t *testing.T) {
	assert.Equal(t, 1.5, ops.NewPowOp(1.5).Exponent())
}

func TestReLUOp(t *testing.T) {
	op := ops.NewReLUOp()

	tests := []struct {
		name     string
		in       float64
		wantOut  float64
		wantGrad float64
	}{
		{"positive", 2.5, 2.5, 1},
		{"negative", -1, 0, 0},
		{"zero blocks gradient", 0, 0, 0},
		{"negative zero", math.Copysign(0, -1), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []float64{tt.in}
			out := op.Forward(in)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, []float64{tt.wantGrad}, op.Backward(1, out, in))
		})
	}
}

func TestReLUOp_NaN(t *testing.T) {
	op := ops.NewReLUOp()

	in := []float64{math.NaN()}
	out := op.Forward(in)
	assert.True(t, math.IsNaN(out))
	assert.Equal(t, []float64{0}, op.Backward(1, out, in))
}

func TestLeafOp(t *testing.T) {
	op := ops.NewLeafOp()
	assert.Nil(t, op.Backward(1, 5, nil))
	assert.Panics(t, func() { op.Forward(nil) })
}

package autodiff

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/grad/internal/autodiff/ops"
)

// ErrInvalidExponent is the panic value cause for a non-finite Pow exponent.
var ErrInvalidExponent = errors.New("invalid exponent")

// Operand is anything an operation accepts: a node or a plain number.
// Numbers are wrapped into fresh leaves by Lift.
type Operand interface {
	*Value | float64 | float32 | int
}

// Lift returns x as a Value. A *Value is returned unchanged; a number becomes a new leaf.
func Lift[T Operand](x T) *Value {
	switch v := any(x).(type) {
	case *Value:
		if v == nil {
			panic("lift: nil *Value")
		}
		return v
	case float64:
		return New(v)
	case float32:
		return New(float64(v))
	case int:
		return New(float64(v))
	}
	panic("lift: unsupported operand")
}

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newNode(ops.NewAddOp(), v, other)
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newNode(ops.NewMulOp(), v, other)
}

// Pow returns v ** k for a constant exponent k.
// Panics with an error wrapping ErrInvalidExponent if k is NaN or infinite.
func (v *Value) Pow(k float64) *Value {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		panic(errors.Wrapf(ErrInvalidExponent, "pow: exponent %v", k))
	}
	return newNode(ops.NewPowOp(k), v)
}

// ReLU returns max(0, v).
func (v *Value) ReLU() *Value {
	return newNode(ops.NewReLUOp(), v)
}

// Neg returns v * -1.
func (v *Value) Neg() *Value {
	return v.Mul(New(-1))
}

// Sub returns v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(other.Neg())
}

// Div returns v * other**-1.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(other.Pow(-1))
}

// Add returns a + b, lifting numbers to leaves.
func Add[A, B Operand](a A, b B) *Value {
	return Lift(a).Add(Lift(b))
}

// Mul returns a * b, lifting numbers to leaves.
func Mul[A, B Operand](a A, b B) *Value {
	return Lift(a).Mul(Lift(b))
}

// Pow returns a ** k.
func Pow[A Operand](a A, k float64) *Value {
	return Lift(a).Pow(k)
}

// ReLU returns max(0, a).
func ReLU[A Operand](a A) *Value {
	return Lift(a).ReLU()
}

// Neg returns -a.
func Neg[A Operand](a A) *Value {
	return Lift(a).Neg()
}

// Sub returns a - b. Sub(1, x) builds 1 + (-x).
func Sub[A, B Operand](a A, b B) *Value {
	return Lift(a).Sub(Lift(b))
}

// Div returns a / b. Div(1, x) builds 1 * x**-1.
func Div[A, B Operand](a A, b B) *Value {
	return Lift(a).Div(Lift(b))
}

// Sum folds Add over vs starting from start, left to right.
// With no values it returns start itself.
func Sum[S Operand](start S, vs ...*Value) *Value {
	acc := Lift(start)
	for _, v := range vs {
		acc = acc.Add(v)
	}
	return acc
}

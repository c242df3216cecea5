// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a Value records a node in an expression
// graph. Calling Backward on the final node propagates gradients to every
// node that contributed to it.
//
// Example:
//
//	import "github.com/born-ml/grad/autodiff"
//
//	func main() {
//	    a := autodiff.New(-2)
//	    b := autodiff.New(3)
//	    f := a.Mul(b).Mul(a.Add(b))
//	    f.Backward()
//	    fmt.Println(a.Grad(), b.Grad()) // -3 -8
//	}
//
// Numbers mix with values through the package-level functions:
//
//	y := autodiff.Sub(1, x)  // 1 - x
//	z := autodiff.Div(y, 2)  // y / 2
package autodiff

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/autodiff/ops"
)

// Value is a scalar node of an expression graph.
type Value = autodiff.Value

// Operand is anything that can appear as an operand: a *Value or a number.
type Operand = autodiff.Operand

// Operation is the local derivative rule attached to a node.
type Operation = ops.Operation

// Kind identifies the operation that produced a node.
type Kind = ops.Kind

// Operation kinds.
const (
	KindLeaf = ops.KindLeaf
	KindAdd  = ops.KindAdd
	KindMul  = ops.KindMul
	KindPow  = ops.KindPow
	KindReLU = ops.KindReLU
)

// ErrInvalidExponent is wrapped by the panic raised for a NaN or infinite exponent.
var ErrInvalidExponent = autodiff.ErrInvalidExponent

// New creates a leaf value.
func New(x float64) *Value {
	return autodiff.New(x)
}

// Lift returns a *Value unchanged and wraps a number into a fresh leaf.
func Lift[T Operand](x T) *Value {
	return autodiff.Lift(x)
}

// Add returns a + b.
func Add[A, B Operand](a A, b B) *Value {
	return autodiff.Add(a, b)
}

// Mul returns a * b.
func Mul[A, B Operand](a A, b B) *Value {
	return autodiff.Mul(a, b)
}

// Pow returns a ** k for a constant exponent k.
func Pow[A Operand](a A, k float64) *Value {
	return autodiff.Pow(a, k)
}

// ReLU returns max(a, 0).
func ReLU[A Operand](a A) *Value {
	return autodiff.ReLU(a)
}

// Neg returns -a.
func Neg[A Operand](a A) *Value {
	return autodiff.Neg(a)
}

// Sub returns a - b.
func Sub[A, B Operand](a A, b B) *Value {
	return autodiff.Sub(a, b)
}

// Div returns a / b.
func Div[A, B Operand](a A, b B) *Value {
	return autodiff.Div(a, b)
}

// Sum returns start + vs[0] + vs[1] + ... folded left to right.
func Sum[S Operand](start S, vs ...*Value) *Value {
	return autodiff.Sum(start, vs...)
}

// ZeroGrads resets the gradient of every given value.
func ZeroGrads(vs ...*Value) {
	autodiff.ZeroGrads(vs...)
}

// TopoSort returns every node reachable from root, operands before consumers.
func TopoSort(root *Value) []*Value {
	return autodiff.TopoSort(root)
}

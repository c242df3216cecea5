// Package gradcheck compares gradients from reverse-mode autodiff with central
// finite differences.
package gradcheck

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/grad/internal/autodiff"
)

// ErrMismatch is returned by Check when an analytic gradient disagrees with the numerical one.
var ErrMismatch = errors.New("gradient mismatch")

// DefaultTolerance is the agreement threshold used when Check is given a non-positive tolerance.
const DefaultTolerance = 1e-4

// Builder constructs a scalar expression over the given leaves.
// It must build the same graph shape for any input values.
type Builder func(xs []*autodiff.Value) *autodiff.Value

// Report holds the outcome of a gradient check.
type Report struct {
	Value    float64   // Expression value at x
	Analytic []float64 // Gradients from Backward
	Numeric  []float64 // Central finite-difference estimates
	MaxDiff  float64   // Largest scaled difference, see Check
	Worst    int       // Index of the input with MaxDiff
}

// Numerical estimates the gradient of f at x with central differences.
func Numerical(f func([]float64) float64, x []float64) []float64 {
	return fd.Gradient(nil, f, x, &fd.Settings{Formula: fd.Central})
}

// Analytic builds the expression on fresh leaves, runs Backward and returns the
// value and the gradient with respect to each leaf.
func Analytic(build Builder, x []float64) (float64, []float64) {
	leaves := make([]*autodiff.Value, len(x))
	for i, xi := range x {
		leaves[i] = autodiff.New(xi)
	}

	out := build(leaves)
	out.Backward()

	grads := make([]float64, len(leaves))
	for i, l := range leaves {
		grads[i] = l.Grad()
	}
	return out.Data(), grads
}

// Evaluate returns the forward value of the expression at x.
func Evaluate(build Builder, x []float64) float64 {
	leaves := make([]*autodiff.Value, len(x))
	for i, xi := range x {
		leaves[i] = autodiff.New(xi)
	}
	return build(leaves).Data()
}

// Check compares analytic and numerical gradients of build at x.
//
// The difference for input i is |analytic-numeric| / max(1, |numeric|), so tol
// acts as an absolute bound near zero and a relative one for large gradients.
// Returns an error wrapping ErrMismatch if any input exceeds tol.
func Check(build Builder, x []float64, tol float64) (Report, error) {
	if len(x) == 0 {
		return Report{}, errors.New("gradcheck: no inputs")
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	value, analytic := Analytic(build, x)
	numeric := Numerical(func(p []float64) float64 { return Evaluate(build, p) }, x)

	report := Report{
		Value:    value,
		Analytic: analytic,
		Numeric:  numeric,
	}
	for i := range x {
		diff := math.Abs(analytic[i]-numeric[i]) / math.Max(1, math.Abs(numeric[i]))
		if math.IsNaN(diff) {
			diff = math.Inf(1)
		}
		if i == 0 || diff > report.MaxDiff {
			report.MaxDiff = diff
			report.Worst = i
		}
	}

	if report.MaxDiff > tol {
		w := report.Worst
		return report, errors.Wrapf(ErrMismatch, "input %d: analytic %g, numerical %g",
			w, analytic[w], numeric[w])
	}
	return report, nil
}

package nn

import (
	"github.com/born-ml/grad/internal/autodiff"
)

// Parameter represents a trainable scalar in a neural network.
//
// Example:
//
//	w := nn.NewParameter("w.0", 0.25)
//	out := w.Value().Mul(x)
//	out.Backward()
//	grad := w.Grad()
type Parameter struct {
	name  string          // Parameter name (e.g., "layers.0.neurons.1.w.0")
	value *autodiff.Value // Leaf holding the current value and gradient
}

// NewParameter creates a new trainable parameter initialized to x.
func NewParameter(name string, x float64) *Parameter {
	return &Parameter{
		name:  name,
		value: autodiff.New(x),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the leaf node to use in forward computations.
func (p *Parameter) Value() *autodiff.Value {
	return p.value
}

// Data returns the current parameter value.
func (p *Parameter) Data() float64 {
	return p.value.Data()
}

// SetData overwrites the parameter value.
func (p *Parameter) SetData(x float64) {
	p.value.SetData(x)
}

// Grad returns the accumulated gradient.
func (p *Parameter) Grad() float64 {
	return p.value.Grad()
}

// ZeroGrad resets the gradient to 0.
func (p *Parameter) ZeroGrad() {
	p.value.ZeroGrad()
}

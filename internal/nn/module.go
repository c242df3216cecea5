// Package nn implements scalar neural network modules on top of package autodiff.
//
// This package provides building blocks for small multi-layer perceptrons:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named trainable leaf Value
//   - Neuron: Weighted sum plus bias with optional ReLU
//   - Layer: A row of independent neurons over the same inputs
//   - MLP: Stack of layers, ReLU everywhere but the last layer
//   - Losses: max-margin (hinge) loss, L2 regularization, accuracy
//
// Every forward call builds fresh graph nodes that reference the parameters as
// operands, so gradients from one loss flow into the shared parameter leaves.
package nn

import (
	"github.com/born-ml/grad/internal/autodiff"
)

// Module is the base interface for all neural network components.
type Module interface {
	// Parameters returns all trainable parameters of this module,
	// including those of nested modules, in a stable order.
	Parameters() []*Parameter
}

// ZeroGrad clears the gradients of every parameter of m.
//
// Backward accumulates into parameter gradients, so this must be called
// before each backward pass of a training step.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// Values returns the underlying leaves of params.
func Values(params []*Parameter) []*autodiff.Value {
	vs := make([]*autodiff.Value, len(params))
	for i, p := range params {
		vs[i] = p.Value()
	}
	return vs
}

// Package optim implements optimization algorithms for scalar networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//   - Schedule: learning rate schedules such as LinearDecay
//
// Optimizers read the gradient accumulated on each parameter leaf by
// Value.Backward and write the new value back with SetData.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//
//	for step := range steps {
//	    loss := computeLoss(model, batch)
//	    optimizer.ZeroGrad()
//	    loss.Backward()
//	    optimizer.Step()
//	}
package optim

import (
	"github.com/born-ml/grad/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Backward accumulates, so this must run before each backward pass.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate, e.g. from a Schedule.
	SetLR(lr float64)

	// StateDict exports the optimizer's internal buffers.
	StateDict() map[string]float64

	// LoadStateDict restores buffers exported by StateDict.
	LoadStateDict(state map[string]float64) error
}

func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

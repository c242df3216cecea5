package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/grad/internal/autodiff"
)

// Neuron computes act = b + Σ w_i * x_i, followed by ReLU when nonlinear.
//
// Weights are drawn from U(-1, 1); the bias starts at zero.
type Neuron struct {
	weights []*Parameter
	bias    *Parameter
	nonlin  bool
}

// NewNeuron creates a neuron with nin inputs.
//
// Parameter names are prefixed with prefix ("<prefix>w.<i>", "<prefix>b").
func NewNeuron(nin int, nonlin bool, rng *rand.Rand, prefix string) *Neuron {
	if nin <= 0 {
		panic(fmt.Sprintf("neuron: input count must be positive, got %d", nin))
	}

	weights := make([]*Parameter, nin)
	for i := range weights {
		weights[i] = NewParameter(fmt.Sprintf("%sw.%d", prefix, i), Uniform(rng))
	}

	return &Neuron{
		weights: weights,
		bias:    NewParameter(prefix+"b", 0),
		nonlin:  nonlin,
	}
}

// Forward computes the neuron output for inputs x.
// Panics if len(x) differs from the neuron's input count.
func (n *Neuron) Forward(x []*autodiff.Value) *autodiff.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("neuron: expected %d inputs, got %d", len(n.weights), len(x)))
	}

	act := n.bias.Value()
	for i, w := range n.weights {
		act = act.Add(w.Value().Mul(x[i]))
	}

	if n.nonlin {
		return act.ReLU()
	}
	return act
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*Parameter {
	params := make([]*Parameter, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// InFeatures returns the number of inputs.
func (n *Neuron) InFeatures() int {
	return len(n.weights)
}

// String implements fmt.Stringer.
func (n *Neuron) String() string {
	kind := "Linear"
	if n.nonlin {
		kind = "ReLU"
	}
	return fmt.Sprintf("%sNeuron(%d)", kind, len(n.weights))
}

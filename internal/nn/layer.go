package nn

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/born-ml/grad/internal/autodiff"
)

// Layer is a row of nout neurons reading the same nin inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(nin, nout int, nonlin bool, rng *rand.Rand, prefix string) *Layer {
	if nout <= 0 {
		panic(fmt.Sprintf("layer: output count must be positive, got %d", nout))
	}

	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(nin, nonlin, rng, fmt.Sprintf("%sneurons.%d.", prefix, i))
	}
	return &Layer{neurons: neurons}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []*autodiff.Value) []*autodiff.Value {
	out := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []*Parameter {
	var params []*Parameter
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// OutFeatures returns the number of neurons.
func (l *Layer) OutFeatures() int {
	return len(l.neurons)
}

// String implements fmt.Stringer.
func (l *Layer) String() string {
	names := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		names[i] = n.String()
	}
	return "Layer of [" + strings.Join(names, ", ") + "]"
}

package nn

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/born-ml/grad/internal/autodiff"
)

// MLP is a multi-layer perceptron: ReLU layers followed by a linear output layer.
//
// Example:
//
//	model := nn.NewMLP(2, []int{16, 16, 1}, nn.NewRand(1337))
//	x := []*autodiff.Value{autodiff.New(0.5), autodiff.New(-1)}
//	score := model.Forward(x)[0]
type MLP struct {
	layers []*Layer
}

// NewMLP creates an MLP with nin inputs and one layer per entry of nouts.
func NewMLP(nin int, nouts []int, rng *rand.Rand) *MLP {
	if len(nouts) == 0 {
		panic("mlp: at least one layer is required")
	}

	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer, len(nouts))
	for i := range nouts {
		nonlin := i != len(nouts)-1
		layers[i] = NewLayer(sizes[i], sizes[i+1], nonlin, rng, fmt.Sprintf("layers.%d.", i))
	}
	return &MLP{layers: layers}
}

// Forward applies all layers in sequence.
func (m *MLP) Forward(x []*autodiff.Value) []*autodiff.Value {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Score runs the network on raw inputs and returns the first output.
func (m *MLP) Score(x []float64) *autodiff.Value {
	in := make([]*autodiff.Value, len(x))
	for i, xi := range x {
		in[i] = autodiff.New(xi)
	}
	return m.Forward(in)[0]
}

// Parameters returns the parameters of every layer in order.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Layers returns the layers of the network.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// String implements fmt.Stringer.
func (m *MLP) String() string {
	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.String()
	}
	return "MLP of [" + strings.Join(names, ", ") + "]"
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides scalar neural network building blocks.
//
// # Overview
//
// This package contains:
//   - Neuron, Layer, MLP: fully connected networks of scalar values
//   - Parameter and the Module interface
//   - Losses: HingeLoss, L2 regularization, Accuracy
//   - StateDict / LoadStateDict for checkpointing
//
// # Basic Usage
//
//	rng := nn.NewRand(1337)
//	model := nn.NewMLP(2, []int{16, 16, 1}, rng)
//
//	scores := make([]*autodiff.Value, len(xs))
//	for i, x := range xs {
//	    scores[i] = model.Score(x)
//	}
//	loss := autodiff.Add(nn.HingeLoss(scores, ys), nn.L2(model.Parameters(), 1e-4))
//
//	nn.ZeroGrad(model)
//	loss.Backward()
package nn

import (
	"math/rand/v2"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/nn"
)

// Module is anything that owns trainable parameters.
type Module = nn.Module

// Parameter is a named trainable leaf value.
type Parameter = nn.Parameter

// Neuron computes relu(w·x + b), or w·x + b when linear.
type Neuron = nn.Neuron

// Layer is a list of neurons sharing the same inputs.
type Layer = nn.Layer

// MLP is a multi-layer perceptron; every layer except the last uses relu.
type MLP = nn.MLP

// ErrUnknownParameter is returned by LoadStateDict for names the module lacks.
var ErrUnknownParameter = nn.ErrUnknownParameter

// NewParameter creates a parameter initialized to x.
func NewParameter(name string, x float64) *Parameter {
	return nn.NewParameter(name, x)
}

// NewNeuron creates a neuron with nin weights drawn uniformly from [-1, 1).
func NewNeuron(nin int, nonlin bool, rng *rand.Rand, prefix string) *Neuron {
	return nn.NewNeuron(nin, nonlin, rng, prefix)
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(nin, nout int, nonlin bool, rng *rand.Rand, prefix string) *Layer {
	return nn.NewLayer(nin, nout, nonlin, rng, prefix)
}

// NewMLP creates a network with nin inputs and the given layer sizes.
//
// Example:
//
//	model := nn.NewMLP(2, []int{16, 16, 1}, nn.NewRand(1337))
func NewMLP(nin int, nouts []int, rng *rand.Rand) *MLP {
	return nn.NewMLP(nin, nouts, rng)
}

// NewRand returns a deterministic generator for parameter initialization.
func NewRand(seed uint64) *rand.Rand {
	return nn.NewRand(seed)
}

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// HingeLoss returns the mean of relu(1 - y*s) over the batch.
func HingeLoss(scores []*autodiff.Value, labels []float64) *autodiff.Value {
	return nn.HingeLoss(scores, labels)
}

// L2 returns alpha times the sum of squared parameters.
func L2(params []*Parameter, alpha float64) *autodiff.Value {
	return nn.L2(params, alpha)
}

// Accuracy returns the fraction of scores whose sign matches the label.
func Accuracy(scores []*autodiff.Value, labels []float64) float64 {
	return nn.Accuracy(scores, labels)
}

// StateDict returns the value of every parameter of m keyed by name.
func StateDict(m Module) map[string]float64 {
	return nn.StateDict(m)
}

// LoadStateDict copies values from state into the parameters of m.
func LoadStateDict(m Module, state map[string]float64) error {
	return nn.LoadStateDict(m, state)
}

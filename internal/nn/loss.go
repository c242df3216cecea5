package nn

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff"
)

// HingeLoss computes the mean max-margin loss for ±1 labels.
//
// Forward:
//
//	L = (1/N) * Σ_i relu(1 - y_i * s_i)
//
// A score on the correct side of the margin contributes nothing and
// passes no gradient.
func HingeLoss(scores []*autodiff.Value, labels []float64) *autodiff.Value {
	checkBatch("hinge loss", scores, labels)

	losses := make([]*autodiff.Value, len(scores))
	for i, s := range scores {
		losses[i] = autodiff.Add(1, autodiff.Mul(-labels[i], s)).ReLU()
	}
	return autodiff.Mul(autodiff.Sum(0, losses...), 1.0/float64(len(losses)))
}

// L2 computes alpha * Σ p² over params.
func L2(params []*Parameter, alpha float64) *autodiff.Value {
	squares := make([]*autodiff.Value, len(params))
	for i, p := range params {
		v := p.Value()
		squares[i] = v.Mul(v)
	}
	return autodiff.Mul(alpha, autodiff.Sum(0, squares...))
}

// Accuracy returns the fraction of scores whose sign agrees with the label.
// A score of exactly 0 counts as the negative class.
func Accuracy(scores []*autodiff.Value, labels []float64) float64 {
	checkBatch("accuracy", scores, labels)

	correct := 0
	for i, s := range scores {
		if (labels[i] > 0) == (s.Data() > 0) {
			correct++
		}
	}
	return float64(correct) / float64(len(scores))
}

func checkBatch(name string, scores []*autodiff.Value, labels []float64) {
	if len(scores) == 0 {
		panic(name + ": empty batch")
	}
	if len(scores) != len(labels) {
		panic(fmt.Sprintf("%s: %d scores but %d labels", name, len(scores), len(labels)))
	}
}

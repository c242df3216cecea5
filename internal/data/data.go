// Package data provides small binary-classification datasets for scalar networks.
package data

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// ErrEmpty is returned when a dataset has no samples.
var ErrEmpty = errors.New("dataset is empty")

// Dataset holds feature rows and ±1 labels.
type Dataset struct {
	X [][]float64 // [num_samples][num_features]
	Y []float64   // [num_samples], each -1 or +1
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Features returns the number of features per sample (0 for an empty dataset).
func (d *Dataset) Features() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Batch returns a random subset of size samples drawn without replacement.
// A size of 0, or at least Len, returns the whole dataset in order.
func (d *Dataset) Batch(size int, rng *rand.Rand) *Dataset {
	if size <= 0 || size >= d.Len() {
		return d
	}

	idx := rng.Perm(d.Len())[:size]
	b := &Dataset{
		X: make([][]float64, size),
		Y: make([]float64, size),
	}
	for i, j := range idx {
		b.X[i] = d.X[j]
		b.Y[i] = d.Y[j]
	}
	return b
}

// Validate checks that the dataset is non-empty and rectangular with ±1 labels.
func (d *Dataset) Validate() error {
	if d.Len() == 0 {
		return ErrEmpty
	}
	if len(d.X) != len(d.Y) {
		return errors.Errorf("dataset: %d rows but %d labels", len(d.X), len(d.Y))
	}
	nf := d.Features()
	if nf == 0 {
		return errors.New("dataset: rows have no features")
	}
	for i, row := range d.X {
		if len(row) != nf {
			return errors.Errorf("dataset: row %d has %d features, want %d", i, len(row), nf)
		}
		if d.Y[i] != 1 && d.Y[i] != -1 {
			return errors.Errorf("dataset: row %d has label %v, want -1 or 1", i, d.Y[i])
		}
	}
	return nil
}

// MakeMoons generates two interleaving half circles with Gaussian noise.
//
// The upper moon is labeled -1 and the lower one +1. Samples are shuffled.
func MakeMoons(n int, noise float64, rng *rand.Rand) *Dataset {
	nOut := n / 2
	nIn := n - nOut

	d := &Dataset{
		X: make([][]float64, 0, n),
		Y: make([]float64, 0, n),
	}
	for i := range nOut {
		t := linspace(i, nOut)
		d.X = append(d.X, []float64{math.Cos(t), math.Sin(t)})
		d.Y = append(d.Y, -1)
	}
	for i := range nIn {
		t := linspace(i, nIn)
		d.X = append(d.X, []float64{1 - math.Cos(t), 1 - math.Sin(t) - 0.5})
		d.Y = append(d.Y, 1)
	}

	if noise > 0 {
		for _, row := range d.X {
			row[0] += rng.NormFloat64() * noise
			row[1] += rng.NormFloat64() * noise
		}
	}

	rng.Shuffle(len(d.Y), func(i, j int) {
		d.X[i], d.X[j] = d.X[j], d.X[i]
		d.Y[i], d.Y[j] = d.Y[j], d.Y[i]
	})
	return d
}

// linspace returns the i-th of n evenly spaced points over [0, π].
func linspace(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return math.Pi * float64(i) / float64(n-1)
}

package nn

import (
	"math/rand/v2"
)

// Uniform draws a weight from U(-1, 1).
func Uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2.0 - 1.0
}

// NewRand returns a deterministic generator for weight initialization.
func NewRand(seed uint64) *rand.Rand {
	//nolint:gosec // Reproducible initialization, not security-critical
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

package train

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/born-ml/grad/internal/optim"
)

// Config holds training loop settings.
//
// Steps and Alpha are taken as given; DefaultConfig returns the usual values.
type Config struct {
	Steps      int                   // Number of optimization steps, 0 = none
	BatchSize  int                   // Samples per step, 0 = whole dataset
	Alpha      float64               // L2 regularization strength, 0 = off
	Schedule   optim.Schedule        // Learning rate per step (default: LinearDecay 1.0 → 0.1)
	Seed       uint64                // Seed for batch sampling
	LogEvery   int                   // Log every n steps (default: 1)
	Workers    int                   // Goroutines for Evaluate (default: 1)
	Logger     *slog.Logger          // Default: slog.Default()
	Registerer prometheus.Registerer // Metrics registry, nil = unregistered
}

// DefaultConfig returns 100 steps with L2 strength 1e-4.
func DefaultConfig() Config {
	return Config{Steps: 100, Alpha: 1e-4}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.Schedule == nil {
		c.Schedule = optim.LinearDecay{Start: 1.0, End: 0.1, Total: c.Steps}
	}
	if c.LogEvery == 0 {
		c.LogEvery = 1
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	switch {
	case c.Steps < 0:
		return errors.Errorf("train: steps must be non-negative, got %d", c.Steps)
	case c.BatchSize < 0:
		return errors.Errorf("train: batch size must be non-negative, got %d", c.BatchSize)
	case c.Alpha < 0:
		return errors.Errorf("train: alpha must be non-negative, got %v", c.Alpha)
	case c.LogEvery < 0:
		return errors.Errorf("train: log interval must be non-negative, got %d", c.LogEvery)
	case c.Workers < 0:
		return errors.Errorf("train: workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Package train runs gradient descent on scalar networks with a max-margin loss.
//
// One step:
//  1. Sample a batch and run the model on every sample
//  2. loss = mean(relu(1 - y*score)) + alpha * Σ p²
//  3. Zero gradients, Backward from the loss
//  4. Set the scheduled learning rate and update parameters
package train

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/data"
	"github.com/born-ml/grad/internal/nn"
	"github.com/born-ml/grad/internal/optim"
	"github.com/born-ml/grad/internal/parallel"
)

// Model is a network producing one score per sample.
type Model interface {
	nn.Module
	Score(x []float64) *autodiff.Value
}

// StepResult describes one optimization step. Loss and Accuracy are measured
// before the parameter update.
type StepResult struct {
	Step     int
	Loss     float64
	DataLoss float64
	Accuracy float64
	LR       float64
	Nodes    int // Graph size reachable from the loss
}

// Trainer drives the optimization loop.
type Trainer struct {
	model   Model
	data    *data.Dataset
	opt     optim.Optimizer
	cfg     Config
	rng     *rand.Rand
	metrics *Metrics
	logger  *slog.Logger
	step    int
}

// New creates a Trainer. The dataset is validated up front.
func New(model Model, ds *data.Dataset, opt optim.Optimizer, cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "train")
	}
	cfg = cfg.withDefaults()

	//nolint:gosec // Batch sampling, not security-critical
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))

	return &Trainer{
		model:   model,
		data:    ds,
		opt:     opt,
		cfg:     cfg,
		rng:     rng,
		metrics: NewMetrics(cfg.Registerer),
		logger:  cfg.Logger,
	}, nil
}

// Metrics returns the trainer's metrics.
func (t *Trainer) Metrics() *Metrics {
	return t.metrics
}

// Step runs one optimization step and advances the step counter.
func (t *Trainer) Step() StepResult {
	k := t.step
	t.step++

	batch := t.data.Batch(t.cfg.BatchSize, t.rng)
	scores := make([]*autodiff.Value, batch.Len())
	for i, x := range batch.X {
		scores[i] = t.model.Score(x)
	}

	params := t.model.Parameters()
	dataLoss := nn.HingeLoss(scores, batch.Y)
	total := dataLoss
	if t.cfg.Alpha != 0 {
		total = dataLoss.Add(nn.L2(params, t.cfg.Alpha))
	}

	t.opt.ZeroGrad()
	total.Backward()

	lr := t.cfg.Schedule.LR(k)
	t.opt.SetLR(lr)
	t.opt.Step()

	r := StepResult{
		Step:     k,
		Loss:     total.Data(),
		DataLoss: dataLoss.Data(),
		Accuracy: nn.Accuracy(scores, batch.Y),
		LR:       lr,
		Nodes:    len(autodiff.TopoSort(total)),
	}
	t.metrics.observe(r)

	if k%t.cfg.LogEvery == 0 || t.step == t.cfg.Steps {
		t.logger.Info("step",
			"step", r.Step,
			"loss", r.Loss,
			"accuracy", r.Accuracy,
			"lr", r.LR,
			"nodes", r.Nodes,
		)
	}
	return r
}

// Run executes the configured number of steps, stopping early if ctx is done.
// Results of completed steps are returned along with ctx.Err() on cancellation.
func (t *Trainer) Run(ctx context.Context) ([]StepResult, error) {
	results := make([]StepResult, 0, t.cfg.Steps)
	for t.step < t.cfg.Steps {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrapf(err, "train: stopped after %d steps", len(results))
		}
		results = append(results, t.Step())
	}

	acc := Evaluate(t.model, t.data, parallel.WithWorkers(t.cfg.Workers))
	t.logger.Info("training finished", "steps", len(results), "accuracy", acc)
	return results, nil
}

// Evaluate returns the accuracy of model over the whole dataset.
//
// Forward passes run on cfg's workers. Parameters must not be updated concurrently.
func Evaluate(model Model, ds *data.Dataset, cfg parallel.Config) float64 {
	scores := parallel.Map(ds.Len(), func(i int) *autodiff.Value {
		return model.Score(ds.X[i])
	}, cfg)
	return nn.Accuracy(scores, ds.Y)
}

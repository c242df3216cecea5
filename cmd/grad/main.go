// Package main provides the grad CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/data"
	"github.com/born-ml/grad/internal/gradcheck"
	"github.com/born-ml/grad/internal/nn"
	"github.com/born-ml/grad/internal/optim"
	"github.com/born-ml/grad/internal/serialization"
	"github.com/born-ml/grad/internal/train"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "grad: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "grad %s\n", version)
		return nil
	case "demo":
		return runDemo(stdout)
	case "train":
		return runTrain(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "grad - scalar reverse-mode autodiff")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  demo       Differentiate a small expression and check it numerically")
	fmt.Fprintln(w, "  train      Train an MLP classifier on two moons (or a CSV file)")
}

// runDemo differentiates f = (a*b) * (a+b) at a=-2, b=3.
func runDemo(w io.Writer) error {
	a := autodiff.New(-2)
	b := autodiff.New(3)
	d := a.Mul(b)
	e := a.Add(b)
	f := d.Mul(e)
	f.Backward()

	fmt.Fprintf(w, "d = a*b     = %g\n", d.Data())
	fmt.Fprintf(w, "e = a+b     = %g\n", e.Data())
	fmt.Fprintf(w, "f = d*e     = %g\n", f.Data())
	fmt.Fprintf(w, "df/da       = %g\n", a.Grad())
	fmt.Fprintf(w, "df/db       = %g\n", b.Grad())
	fmt.Fprintf(w, "graph nodes = %d\n", len(autodiff.TopoSort(f)))

	report, err := gradcheck.Check(func(xs []*autodiff.Value) *autodiff.Value {
		return xs[0].Mul(xs[1]).Mul(xs[0].Add(xs[1]))
	}, []float64{-2, 3}, gradcheck.DefaultTolerance)
	if err != nil {
		return errors.Wrap(err, "demo")
	}
	fmt.Fprintf(w, "gradcheck   ok (max diff %.2e)\n", report.MaxDiff)
	return nil
}

type trainFlags struct {
	steps       int
	batch       int
	samples     int
	noise       float64
	seed        uint64
	alpha       float64
	lrStart     float64
	lrEnd       float64
	hidden      string
	optimizer   string
	momentum    float64
	dataPath    string
	workers     int
	logEvery    int
	metricsAddr string
	save        string
}

func parseTrainFlags(args []string, stderr io.Writer) (*trainFlags, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &trainFlags{}
	fs.IntVar(&f.steps, "steps", 100, "Number of optimization steps")
	fs.IntVar(&f.batch, "batch", 0, "Batch size (0 = full dataset)")
	fs.IntVar(&f.samples, "samples", 100, "Number of generated moons samples")
	fs.Float64Var(&f.noise, "noise", 0.1, "Standard deviation of moons noise")
	fs.Uint64Var(&f.seed, "seed", 1337, "Random seed for initialization and data")
	fs.Float64Var(&f.alpha, "alpha", 1e-4, "L2 regularization strength")
	fs.Float64Var(&f.lrStart, "lr-start", 1.0, "Learning rate at step 0")
	fs.Float64Var(&f.lrEnd, "lr-end", 0.1, "Learning rate at the last step")
	fs.StringVar(&f.hidden, "hidden", "16,16", "Comma-separated hidden layer sizes")
	fs.StringVar(&f.optimizer, "optimizer", "sgd", "Optimizer: sgd or adam")
	fs.Float64Var(&f.momentum, "momentum", 0, "SGD momentum")
	fs.StringVar(&f.dataPath, "data", "", "CSV file with x1,...,xn,label rows (default: generated moons)")
	fs.IntVar(&f.workers, "workers", 4, "Goroutines for final evaluation")
	fs.IntVar(&f.logEvery, "log-every", 1, "Log every n steps")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.StringVar(&f.save, "save", "", "Write a checkpoint to this path after training")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("train: unexpected arguments %v", fs.Args())
	}
	if f.steps <= 0 {
		return nil, errors.Errorf("train: steps must be positive, got %d", f.steps)
	}
	return f, nil
}

func parseHidden(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "hidden layer %d", i)
		}
		if n <= 0 {
			return nil, errors.Errorf("hidden layer %d: size must be positive, got %d", i, n)
		}
		sizes[i] = n
	}
	return sizes, nil
}

func newOptimizer(name string, params []*nn.Parameter, momentum float64) (optim.Optimizer, string, error) {
	switch strings.ToLower(name) {
	case "sgd":
		return optim.NewSGD(params, optim.SGDConfig{LR: 1, Momentum: momentum}), "SGD", nil
	case "adam":
		return optim.NewAdam(params, optim.AdamConfig{}), "Adam", nil
	default:
		return nil, "", errors.Errorf("unknown optimizer %q", name)
	}
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseTrainFlags(args, stderr)
	if err != nil {
		return err
	}
	hidden, err := parseHidden(f.hidden)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	rng := nn.NewRand(f.seed)

	var ds *data.Dataset
	if f.dataPath != "" {
		ds, err = data.LoadCSVFile(f.dataPath)
		if err != nil {
			return err
		}
	} else {
		ds = data.MakeMoons(f.samples, f.noise, rng)
	}
	logger.Info("dataset loaded", "samples", ds.Len(), "features", ds.Features())

	model := nn.NewMLP(ds.Features(), append(hidden, 1), rng)
	opt, optName, err := newOptimizer(f.optimizer, model.Parameters(), f.momentum)
	if err != nil {
		return err
	}
	logger.Info("model created", "model", model.String(), "parameters", len(model.Parameters()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if f.metricsAddr != "" {
		srv := serveMetrics(f.metricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	trainer, err := train.New(model, ds, opt, train.Config{
		Steps:      f.steps,
		BatchSize:  f.batch,
		Alpha:      f.alpha,
		Schedule:   optim.LinearDecay{Start: f.lrStart, End: f.lrEnd, Total: f.steps},
		Seed:       f.seed,
		LogEvery:   f.logEvery,
		Workers:    f.workers,
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		return err
	}

	results, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	if len(results) > 0 {
		last := results[len(results)-1]
		fmt.Fprintf(stdout, "step %d loss %.6f accuracy %.1f%%\n", last.Step, last.Loss, last.Accuracy*100)
	}

	if f.save == "" {
		return nil
	}

	ckpt := &serialization.Checkpoint{
		Header: serialization.Header{
			ModelType: model.String(),
			Metadata: map[string]string{
				"hidden": f.hidden,
				"seed":   strconv.FormatUint(f.seed, 10),
			},
		},
		Params:         nn.StateDict(model),
		OptimizerState: opt.StateDict(),
	}
	if len(results) > 0 {
		last := results[len(results)-1]
		ckpt.Header.CheckpointMeta = &serialization.CheckpointMeta{
			Step:          last.Step,
			Loss:          last.Loss,
			Accuracy:      last.Accuracy,
			OptimizerType: optName,
		}
	}
	if err := serialization.Save(f.save, ckpt); err != nil {
		return err
	}
	logger.Info("checkpoint saved", "path", f.save)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}

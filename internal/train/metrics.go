package train

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes training progress to Prometheus.
type Metrics struct {
	Loss         prometheus.Gauge
	Accuracy     prometheus.Gauge
	LearningRate prometheus.Gauge
	Steps        prometheus.Counter
	GraphNodes   prometheus.Histogram
}

// NewMetrics creates the training metrics and registers them on reg.
// A nil reg creates unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Loss: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "grad",
			Subsystem: "train",
			Name:      "loss",
			Help:      "Total loss (data + regularization) of the last step.",
		}),
		Accuracy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "grad",
			Subsystem: "train",
			Name:      "accuracy",
			Help:      "Batch accuracy of the last step.",
		}),
		LearningRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "grad",
			Subsystem: "train",
			Name:      "learning_rate",
			Help:      "Learning rate used by the last step.",
		}),
		Steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "grad",
			Subsystem: "train",
			Name:      "steps_total",
			Help:      "Completed optimization steps.",
		}),
		GraphNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grad",
			Subsystem: "train",
			Name:      "graph_nodes",
			Help:      "Nodes reachable from the loss in each backward pass.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
	}
}

func (m *Metrics) observe(r StepResult) {
	m.Loss.Set(r.Loss)
	m.Accuracy.Set(r.Accuracy)
	m.LearningRate.Set(r.LR)
	m.Steps.Inc()
	m.GraphNodes.Observe(float64(r.Nodes))
}

// Package prometheus records inference metrics with the Prometheus client.
package prometheus

import (
	"context"
	"time"

	"github.com/destiner/carpe"
	"github.com/prometheus/client_golang/prometheus"
)

var _ carpe.InferenceService = (*Inference)(nil)

// Metrics holds the collectors shared by instrumented services.
type Metrics struct {
	calls       *prometheus.CounterVec
	unavailable *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carpe_inference_calls_total",
				Help: "Total number of inference calls by outcome",
			},
			[]string{"outcome"},
		),
		unavailable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carpe_inference_unavailable_total",
				Help: "Total number of capability checks that reported the model unavailable, by reason",
			},
			[]string{"reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "carpe_inference_duration_seconds",
				Help:    "Time taken by a single inference call",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.unavailable, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Inference counts and times calls to the wrapped service.
type Inference struct {
	next    carpe.InferenceService
	metrics *Metrics
}

// NewInference wraps next with metrics.
func NewInference(next carpe.InferenceService, metrics *Metrics) *Inference {
	return &Inference{next: next, metrics: metrics}
}

func (i *Inference) Capability(ctx context.Context) carpe.CapabilityState {
	state := i.next.Capability(ctx)
	if !state.Available {
		i.metrics.unavailable.WithLabelValues(string(state.Reason.Kind)).Inc()
	}
	return state
}

func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	start := time.Now()
	out, err := i.next.Generate(ctx, req)
	i.metrics.duration.Observe(time.Since(start).Seconds())
	i.metrics.calls.WithLabelValues(outcome(ctx, err)).Inc()
	return out, err
}

func outcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case ctx.Err() != nil:
		return "canceled"
	case carpe.ErrorCode(err) == carpe.EUNAVAILABLE:
		return "rejected"
	default:
		return "error"
	}
}

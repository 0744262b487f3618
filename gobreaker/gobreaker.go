// Package gobreaker guards an inference service with a circuit breaker.
package gobreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/destiner/carpe"
	"github.com/sony/gobreaker"
)

var _ carpe.InferenceService = (*Inference)(nil)

// Config configures the breaker.
type Config struct {
	Name string

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the period after which closed-state counts are reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker.
	FailureThreshold float64

	// MinRequests is the number of calls needed before the ratio applies.
	MinRequests uint32
}

// DefaultConfig returns settings suited to a remote model API.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Inference reports the model as not ready while the breaker is open and
// rejects Generate calls without reaching the wrapped service.
type Inference struct {
	next    carpe.InferenceService
	breaker *gobreaker.CircuitBreaker
}

// NewInference wraps next with a circuit breaker. State changes are logged
// to logger.
func NewInference(next carpe.InferenceService, cfg Config, logger *slog.Logger) *Inference {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		// Cancelled calls say nothing about the health of the model.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Inference{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Capability returns ModelNotReady while the breaker is open, and the
// wrapped service's state otherwise.
func (i *Inference) Capability(ctx context.Context) carpe.CapabilityState {
	if i.breaker.State() == gobreaker.StateOpen {
		return carpe.Unavailable(carpe.ReasonModelNotReady)
	}
	return i.next.Capability(ctx)
}

// Generate runs the call through the breaker. A rejected call returns a
// *carpe.UnavailableError.
func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	out, err := i.breaker.Execute(func() (any, error) {
		return i.next.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &carpe.UnavailableError{Reason: carpe.UnavailableReason{Kind: carpe.ReasonModelNotReady}}
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the current breaker state.
func (i *Inference) State() string {
	return i.breaker.State().String()
}

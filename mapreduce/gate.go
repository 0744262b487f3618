package mapreduce

import (
	"context"

	"github.com/destiner/carpe"
)

// Gate checks the capability of an inference service before any work is
// done. The state is queried on every call and never cached, since it can
// change at any time (model downloads, settings, breaker state).
type Gate struct {
	inference carpe.InferenceService
}

// NewGate creates a gate over the given inference service.
func NewGate(inference carpe.InferenceService) *Gate {
	return &Gate{inference: inference}
}

// Availability returns the current capability state.
func (g *Gate) Availability(ctx context.Context) carpe.CapabilityState {
	return g.inference.Capability(ctx)
}

// Check returns a *carpe.UnavailableError when the service cannot be used.
func (g *Gate) Check(ctx context.Context) error {
	state := g.inference.Capability(ctx)
	if !state.Available {
		return &carpe.UnavailableError{Reason: state.Reason}
	}
	return nil
}

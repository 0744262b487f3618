package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/destiner/carpe"
	"github.com/google/uuid"
)

var _ carpe.InferenceService = (*LoggingInference)(nil)

// LoggingInference wraps an InferenceService with logging. Each Generate
// call gets its own request id. Calls made under a LoggingSummarizer or
// LoggingAnswerer also log that invocation's run id.
type LoggingInference struct {
	next   carpe.InferenceService
	logger *slog.Logger
}

// NewLoggingInference creates a new LoggingInference.
func NewLoggingInference(next carpe.InferenceService, logger *slog.Logger) *LoggingInference {
	return &LoggingInference{next: next, logger: logger}
}

// Capability logs the state at debug level.
func (i *LoggingInference) Capability(ctx context.Context) (state carpe.CapabilityState) {
	defer func(begin time.Time) {
		i.logger.Debug("capability",
			"state", state.String(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Capability(ctx)
}

// Generate logs input and output sizes and delegates.
func (i *LoggingInference) Generate(ctx context.Context, req carpe.GenerateRequest) (out string, err error) {
	id := uuid.NewString()
	defer func(begin time.Time) {
		i.logger.Info("generate",
			"request", id,
			"run", runFrom(ctx),
			"input", carpe.ContentLength(req.UserText),
			"maxTokens", req.MaxOutputTokens,
			"output", carpe.ContentLength(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Generate(ctx, req)
}

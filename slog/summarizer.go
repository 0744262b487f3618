package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/destiner/carpe"
	"github.com/google/uuid"
)

var (
	_ carpe.Summarizer = (*LoggingSummarizer)(nil)
	_ carpe.Answerer   = (*LoggingAnswerer)(nil)
)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   carpe.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next carpe.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

func (s *LoggingSummarizer) Summarize(ctx context.Context, content string) (summary string, err error) {
	ctx, run := withRun(ctx)
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"run", run,
			"length", carpe.ContentLength(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, content)
}

// LoggingAnswerer wraps an Answerer with logging.
type LoggingAnswerer struct {
	next   carpe.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next carpe.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

func (a *LoggingAnswerer) Answer(ctx context.Context, content, question string) (answer string, err error) {
	ctx, run := withRun(ctx)
	defer func(begin time.Time) {
		a.logger.Info("answer",
			"run", run,
			"length", carpe.ContentLength(content),
			"question", question,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, content, question)
}

type runKey struct{}

// withRun tags ctx with a fresh run id so every inference call made for one
// summary or answer logs the same id.
func withRun(ctx context.Context) (context.Context, string) {
	run := uuid.NewString()
	return context.WithValue(ctx, runKey{}, run), run
}

func runFrom(ctx context.Context) string {
	run, _ := ctx.Value(runKey{}).(string)
	return run
}

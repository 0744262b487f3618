package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/destiner/carpe"
)

var _ carpe.NavigationAwaiter = (*LoggingAwaiter)(nil)

// LoggingAwaiter wraps a NavigationAwaiter with debug logging.
type LoggingAwaiter struct {
	next   carpe.NavigationAwaiter
	logger *slog.Logger
}

// NewLoggingAwaiter creates a new LoggingAwaiter.
func NewLoggingAwaiter(next carpe.NavigationAwaiter, logger *slog.Logger) *LoggingAwaiter {
	return &LoggingAwaiter{next: next, logger: logger}
}

func (a *LoggingAwaiter) Await(ctx context.Context, id carpe.NavigationID) (ok bool, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("navigation",
			"id", string(id),
			"finished", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Await(ctx, id)
}

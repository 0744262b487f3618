// Package navigation turns an overwritten "current navigation event" slot
// into an awaitable result.
package navigation

import (
	"context"
	"time"

	"github.com/destiner/carpe"
)

// DefaultPollInterval is how often the tracker reads the slot.
const DefaultPollInterval = 10 * time.Millisecond

var _ carpe.NavigationAwaiter = (*Tracker)(nil)

// Tracker waits for a navigation to reach a terminal state by polling a
// NavigationSource. Events for other navigations are ignored, so a stale
// event left over from a previous load never resolves a new one.
//
// Await has no timeout of its own. It polls until a matching terminal event
// is seen or ctx is done.
type Tracker struct {
	source   carpe.NavigationSource
	interval time.Duration
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithPollInterval sets the polling interval. Non-positive values are ignored.
func WithPollInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// NewTracker creates a tracker reading from source.
func NewTracker(source carpe.NavigationSource, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		source:   source,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Await returns true once the navigation with the given id finishes and
// false once it fails. The failure detail is not reported. If ctx is done
// first, ctx.Err() is returned.
func (t *Tracker) Await(ctx context.Context, id carpe.NavigationID) (bool, error) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if ev, ok := t.source.CurrentNavigationEvent(); ok && ev.ID == id {
			switch ev.Kind {
			case carpe.NavigationFinished:
				return true, nil
			case carpe.NavigationFailed:
				return false, nil
			}
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

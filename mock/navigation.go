package mock

import (
	"context"
	"sync"

	"github.com/destiner/carpe"
)

var (
	_ carpe.NavigationSource  = (*NavigationSource)(nil)
	_ carpe.NavigationAwaiter = (*NavigationAwaiter)(nil)
	_ carpe.Navigator         = (*Navigator)(nil)
)

// NavigationSource replays a scripted sequence of events. Each read
// returns the next event; once exhausted the last event is repeated,
// mirroring a slot that is no longer written to.
type NavigationSource struct {
	Events []carpe.NavigationEvent

	mu    sync.Mutex
	reads int
}

func (s *NavigationSource) CurrentNavigationEvent() (carpe.NavigationEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Events) == 0 {
		return carpe.NavigationEvent{}, false
	}
	i := min(s.reads, len(s.Events)-1)
	s.reads++
	return s.Events[i], true
}

// Reads returns the number of times the slot was read.
func (s *NavigationSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// NavigationAwaiter is a mock implementation of carpe.NavigationAwaiter.
type NavigationAwaiter struct {
	AwaitFn func(ctx context.Context, id carpe.NavigationID) (bool, error)
}

func (a *NavigationAwaiter) Await(ctx context.Context, id carpe.NavigationID) (bool, error) {
	return a.AwaitFn(ctx, id)
}

// Navigator is a mock implementation of carpe.Navigator.
type Navigator struct {
	LoadFn                   func(ctx context.Context, url string) (carpe.NavigationID, error)
	CurrentNavigationEventFn func() (carpe.NavigationEvent, bool)
}

func (n *Navigator) Load(ctx context.Context, url string) (carpe.NavigationID, error) {
	return n.LoadFn(ctx, url)
}

func (n *Navigator) CurrentNavigationEvent() (carpe.NavigationEvent, bool) {
	return n.CurrentNavigationEventFn()
}

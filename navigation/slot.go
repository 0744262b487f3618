package navigation

import (
	"sync/atomic"

	"github.com/destiner/carpe"
)

var _ carpe.NavigationSource = (*Slot)(nil)

// Slot holds the most recent navigation event. Each Publish overwrites the
// previous event; readers never see a queue, only the latest value.
// The zero value is an empty slot ready for use.
type Slot struct {
	current atomic.Pointer[carpe.NavigationEvent]
}

// Publish replaces the current event.
func (s *Slot) Publish(ev carpe.NavigationEvent) {
	s.current.Store(&ev)
}

// CurrentNavigationEvent returns the current event, if any was published.
func (s *Slot) CurrentNavigationEvent() (carpe.NavigationEvent, bool) {
	ev := s.current.Load()
	if ev == nil {
		return carpe.NavigationEvent{}, false
	}
	return *ev, true
}

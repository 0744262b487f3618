package carpe

import "context"

// NavigationID identifies a single page-load request. Ids are opaque and
// issued by the navigation collaborator.
type NavigationID string

// NavigationKind is the state a navigation event reports.
type NavigationKind int

// Navigation states. Finished and Failed are terminal.
const (
	NavigationPending NavigationKind = iota
	NavigationFinished
	NavigationFailed
)

// String returns the name of the kind.
func (k NavigationKind) String() string {
	switch k {
	case NavigationPending:
		return "pending"
	case NavigationFinished:
		return "finished"
	case NavigationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events follow for the same id.
func (k NavigationKind) Terminal() bool {
	return k == NavigationFinished || k == NavigationFailed
}

// NavigationEvent is the latest observed state of a navigation.
type NavigationEvent struct {
	ID     NavigationID
	Kind   NavigationKind
	Detail string // failure description, empty otherwise
}

// NavigationSource exposes the navigation collaborator's current event.
// The collaborator overwrites the event without notification; readers may
// miss intermediate events. Events for ids other than the one a reader
// awaits are stale and valid.
type NavigationSource interface {
	// CurrentNavigationEvent returns the most recent event, or false if no
	// navigation has been observed yet.
	CurrentNavigationEvent() (NavigationEvent, bool)
}

// NavigationAwaiter waits for a navigation to reach a terminal state.
type NavigationAwaiter interface {
	// Await blocks until the navigation with the given id finishes (true) or
	// fails (false). The failure detail is not returned. The only error is
	// the context's, when it is canceled before a terminal event arrives.
	Await(ctx context.Context, id NavigationID) (bool, error)
}

// Navigator starts page loads on a page that publishes navigation events.
type Navigator interface {
	NavigationSource

	// Load starts loading url and returns the id of the new navigation
	// without waiting for it to complete.
	Load(ctx context.Context, url string) (NavigationID, error)
}

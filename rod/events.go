package rod

import (
	"github.com/destiner/carpe"
	"github.com/go-rod/rod/lib/proto"
)

// lifecycleEvent maps a main-frame lifecycle event to a navigation event.
// Only "init" and "load" are of interest; subframe events are dropped.
func lifecycleEvent(mainFrame proto.PageFrameID, e *proto.PageLifecycleEvent) (carpe.NavigationEvent, bool) {
	if e.FrameID != mainFrame || e.LoaderID == "" {
		return carpe.NavigationEvent{}, false
	}
	id := carpe.NavigationID(e.LoaderID)
	switch e.Name {
	case "init":
		return carpe.NavigationEvent{ID: id, Kind: carpe.NavigationPending}, true
	case "load":
		return carpe.NavigationEvent{ID: id, Kind: carpe.NavigationFinished}, true
	default:
		return carpe.NavigationEvent{}, false
	}
}

// loadingFailedEvent maps a failed document request to a navigation event.
// Chrome reuses the loader id as the request id of a navigation's document
// request, so the two can be matched.
func loadingFailedEvent(e *proto.NetworkLoadingFailed) (carpe.NavigationEvent, bool) {
	if e.Type != proto.NetworkResourceTypeDocument {
		return carpe.NavigationEvent{}, false
	}
	return carpe.NavigationEvent{
		ID:     carpe.NavigationID(e.RequestID),
		Kind:   carpe.NavigationFailed,
		Detail: e.ErrorText,
	}, true
}

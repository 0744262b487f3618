package rod

import (
	"context"
	"fmt"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/navigation"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

var _ carpe.Navigator = (*Page)(nil)

// Page is a browser tab that reports navigation progress through a
// navigation.Slot. CDP events are pumped into the slot in the background
// for the lifetime of the page.
type Page struct {
	page *rod.Page
	slot navigation.Slot
	stop context.CancelFunc
}

// NewPage opens a blank tab in browser and starts listening for
// navigation events. Close must be called to release it.
func NewPage(browser *rod.Browser) (*Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if err := (proto.PageEnable{}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("enabling page events: %w", err)
	}
	if err := (proto.PageSetLifecycleEventsEnabled{Enabled: true}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("enabling lifecycle events: %w", err)
	}
	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("enabling network events: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{page: page, stop: cancel}

	// Subscribed before any navigation so no event is missed.
	wait := page.Context(ctx).EachEvent(
		func(e *proto.PageLifecycleEvent) {
			if ev, ok := lifecycleEvent(page.FrameID, e); ok {
				p.slot.Publish(ev)
			}
		},
		func(e *proto.NetworkLoadingFailed) {
			if ev, ok := loadingFailedEvent(e); ok {
				p.slot.Publish(ev)
			}
		},
	)
	go wait()

	return p, nil
}

// Load starts navigating to url and returns the id of the navigation. It
// does not wait for the page to load; pair it with a NavigationAwaiter.
func (p *Page) Load(ctx context.Context, url string) (carpe.NavigationID, error) {
	res, err := proto.PageNavigate{URL: url}.Call(p.page.Context(ctx))
	if err != nil {
		return "", err
	}

	// Same-document navigations have no loader and complete immediately.
	if res.LoaderID == "" {
		id := carpe.NavigationID(uuid.NewString())
		p.slot.Publish(carpe.NavigationEvent{ID: id, Kind: carpe.NavigationFinished})
		return id, nil
	}

	id := carpe.NavigationID(res.LoaderID)
	if res.ErrorText != "" {
		p.slot.Publish(carpe.NavigationEvent{ID: id, Kind: carpe.NavigationFailed, Detail: res.ErrorText})
	}
	return id, nil
}

// CurrentNavigationEvent returns the latest navigation event of the page.
func (p *Page) CurrentNavigationEvent() (carpe.NavigationEvent, bool) {
	return p.slot.CurrentNavigationEvent()
}

// HTML returns the rendered HTML of the current document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Close stops the event pump and closes the tab.
func (p *Page) Close() error {
	p.stop()
	return p.page.Close()
}

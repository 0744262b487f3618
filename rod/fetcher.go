package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/navigation"
)

// DefaultFetchTimeout bounds a single fetch, including the wait for the
// page to finish loading.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements carpe.Fetcher at compile time.
var _ carpe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Each fetch opens a Page, starts the navigation and waits on a
// navigation.Tracker before reading the document.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	pollInterval time.Duration
	managerOpts  []ManagerOption
	decorate     func(carpe.NavigationAwaiter) carpe.NavigationAwaiter
	closed       atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithPollInterval sets how often the navigation state is checked.
func WithPollInterval(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.pollInterval = d
	}
}

// WithManagerOptions configures the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) FetcherOption {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// WithAwaiterDecorator wraps the navigation tracker of every fetch,
// e.g. with a logging decorator.
func WithAwaiterDecorator(fn func(carpe.NavigationAwaiter) carpe.NavigationAwaiter) FetcherOption {
	return func(f *Fetcher) {
		f.decorate = fn
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		pollInterval: navigation.DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML once the page
// has finished loading.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", carpe.Errorf(carpe.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	id, err := page.Load(ctx, url)
	if err != nil {
		return "", fetchErr(ctx, err)
	}

	var tracker carpe.NavigationAwaiter = navigation.NewTracker(page, navigation.WithPollInterval(f.pollInterval))
	if f.decorate != nil {
		tracker = f.decorate(tracker)
	}
	ok, err := tracker.Await(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", carpe.Errorf(carpe.EINVALID, "failed to load %s", url)
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return "", fetchErr(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// fetchErr prefers the context error, which rod reports less precisely.
func fetchErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Package rate throttles calls to inference services and page fetches
// using token buckets.
package rate

import (
	"context"
	"net/url"
	"sync"

	"github.com/destiner/carpe"
	"golang.org/x/time/rate"
)

var (
	_ carpe.InferenceService = (*Inference)(nil)
	_ carpe.Fetcher          = (*Fetcher)(nil)
)

// Inference limits Generate calls to a fixed rate with a burst of one.
// Capability queries are not limited.
type Inference struct {
	next    carpe.InferenceService
	limiter *rate.Limiter
}

// NewInference wraps next so that at most rps Generate calls start per second.
// A non-positive rps disables limiting.
func NewInference(next carpe.InferenceService, rps float64) *Inference {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Inference{next: next, limiter: rate.NewLimiter(limit, 1)}
}

func (i *Inference) Capability(ctx context.Context) carpe.CapabilityState {
	return i.next.Capability(ctx)
}

// Generate waits for the limiter and delegates. It returns the context
// error if ctx is done while waiting.
func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return i.next.Generate(ctx, req)
}

// DomainLimiter provides per-domain rate limiting using token buckets.
// Requests to different domains proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the limit allows a request to the domain.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Fetcher limits fetches per host of the requested URL.
type Fetcher struct {
	next    carpe.Fetcher
	limiter *DomainLimiter
}

// NewFetcher wraps next with a per-host limit of rps fetches per second.
func NewFetcher(next carpe.Fetcher, rps float64) *Fetcher {
	return &Fetcher{next: next, limiter: NewDomainLimiter(rps)}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	if err := f.limiter.Wait(ctx, host); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, rawURL)
}

func (f *Fetcher) Close() error {
	return f.next.Close()
}

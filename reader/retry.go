package reader

import (
	"context"
	"time"

	"github.com/destiner/carpe"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches url, retrying after each delay in delays.
// ENOTFOUND is permanent and returned immediately.
func fetchWithRetry(ctx context.Context, fetcher carpe.Fetcher, url string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if carpe.ErrorCode(err) == carpe.ENOTFOUND || ctx.Err() != nil {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", lastErr
}

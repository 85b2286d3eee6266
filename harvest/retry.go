package harvest

import (
	"context"
	"time"

	"github.com/cdunford/claimharvest"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches a URL, retrying transport failures with the given
// backoff delays. Non-2xx responses are results, not failures, so they are
// never retried.
func fetchWithRetry(ctx context.Context, fetcher claimharvest.Fetcher, url string, delays []time.Duration) (*claimharvest.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/heroscrape"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// BackoffDelays returns the optional retry delays for fetches: 1s, 2s, 4s.
// The driver does not retry unless delays are configured.
func BackoffDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying once per entry in delays after
// waiting that long. Context cancellation stops retrying and returns the
// context error. Invalid URLs are not retried.
func FetchWithRetry(ctx context.Context, f heroscrape.Fetcher, url string, delays []time.Duration, logger LogFunc) (*heroscrape.RawPage, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		page, err := f.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		if attempt == len(delays) || heroscrape.ErrorCode(err) == heroscrape.EINVALID {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}
		if err := sleepContext(ctx, delays[attempt]); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

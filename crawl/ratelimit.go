package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/heroscrape"
	"golang.org/x/time/rate"
)

var _ heroscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same host by a minimum interval
// using one token bucket per host with a burst of 1.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per
// interval to each host. A non-positive interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitURL waits on the limiter for the host of rawURL. A nil limiter or an
// unparseable URL does not wait.
func waitURL(ctx context.Context, l heroscrape.DomainLimiter, rawURL string) error {
	if l == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return l.Wait(ctx, u.Host)
}

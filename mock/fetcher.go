package mock

import (
	"context"

	"github.com/fwojciec/heroscrape"
)

var _ heroscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of heroscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*heroscrape.RawPage, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*heroscrape.RawPage, error) {
	return f.FetchFn(ctx, url)
}

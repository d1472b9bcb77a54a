package mock

import (
	"context"

	"github.com/fwojciec/heroscrape"
)

var _ heroscrape.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of heroscrape.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *heroscrape.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *heroscrape.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}

// Package slog provides log/slog decorators for the heroscrape services.
// Each decorator logs one line per call with the operation, its target,
// its size, the time it took and any error.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/heroscrape"
)

// Ensure LoggingSitemapService implements heroscrape.SitemapService.
var _ heroscrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   heroscrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next heroscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *heroscrape.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", sitemapURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, sitemapURL, filter)
}

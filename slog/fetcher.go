package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/heroscrape"
)

// Ensure LoggingFetcher implements heroscrape.Fetcher.
var _ heroscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   heroscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next heroscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *heroscrape.RawPage, err error) {
	defer func(begin time.Time) {
		var size, status int
		if page != nil {
			size = len(page.Body)
			status = page.Status
		}
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/heroscrape"
)

// Ensure LoggingWriter implements heroscrape.ArtifactWriter.
var _ heroscrape.ArtifactWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps an ArtifactWriter with logging.
type LoggingWriter struct {
	next   heroscrape.ArtifactWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next heroscrape.ArtifactWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteArtifact delegates to the wrapped writer and logs the write.
func (w *LoggingWriter) WriteArtifact(ctx context.Context, a *heroscrape.Artifact) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write artifact",
			"url", a.SourceURL,
			"path", path,
			"bytes", len(a.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteArtifact(ctx, a)
}

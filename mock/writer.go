package mock

import (
	"context"

	"github.com/fwojciec/heroscrape"
)

var _ heroscrape.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of heroscrape.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, a *heroscrape.Artifact) (string, error)
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, a *heroscrape.Artifact) (string, error) {
	return w.WriteArtifactFn(ctx, a)
}

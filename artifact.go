package heroscrape

import (
	"context"
	"time"
)

// Artifact is one persisted text file. Artifacts are never rewritten;
// the timestamp in the filename keeps repeated runs from colliding.
type Artifact struct {
	Filename  string
	SourceURL string
	Kind      PageKind
	Body      string
	FetchedAt time.Time
}

// Validate returns an error if the artifact cannot be written.
func (a *Artifact) Validate() error {
	if a.Filename == "" {
		return Errorf(EINVALID, "artifact filename required")
	}
	if a.Body == "" {
		return Errorf(EINVALID, "artifact %s has no content", a.Filename)
	}
	return nil
}

// ArtifactWriter persists artifacts with a provenance header.
type ArtifactWriter interface {
	// WriteArtifact stores the artifact and returns the path written.
	// Returns EINVALID for an empty body and EPERSIST when storage fails.
	WriteArtifact(ctx context.Context, a *Artifact) (string, error)
}

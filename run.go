package heroscrape

import (
	"context"
	"time"
)

// ItemStatus is the outcome of processing one work item.
type ItemStatus string

// Item outcomes.
const (
	StatusSaved         ItemStatus = "saved"
	StatusPartial       ItemStatus = "partial"
	StatusFetchFailed   ItemStatus = "fetch_failed"
	StatusPersistFailed ItemStatus = "persist_failed"
	StatusSkipped       ItemStatus = "skipped"
)

// Failed reports whether the status means no artifact was written.
func (s ItemStatus) Failed() bool {
	return s == StatusFetchFailed || s == StatusPersistFailed || s == StatusSkipped
}

// ItemResult records what happened to one work item.
type ItemResult struct {
	Item     WorkItem
	Position int
	Status   ItemStatus
	// Name is the resolved hero name, empty for listing pages.
	Name     string
	Encoding string
	Path     string
	Body     string
	Err      error
}

// Run summarizes one batch crawl.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Total      int       `json:"total"`
	Saved      int       `json:"saved"`
	Partial    int       `json:"partial"`
	Failed     int       `json:"failed"`
}

// Record folds one item outcome into the run counters.
func (r *Run) Record(res *ItemResult) {
	switch {
	case res.Status.Failed():
		r.Failed++
	case res.Status == StatusPartial:
		r.Partial++
		r.Saved++
	default:
		r.Saved++
	}
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID    *string
	Limit int
}

// RunItem is a persisted item outcome.
type RunItem struct {
	RunID       string
	Position    int
	URL         string
	Kind        PageKind
	Status      ItemStatus
	Path        string
	ContentHash string
	Error       string
}

// Ledger keeps a history of crawl runs and their items.
type Ledger interface {
	// CreateRun stores a new run. The ID is assigned if empty.
	CreateRun(ctx context.Context, run *Run) error

	// RecordItem stores the outcome of one item in a run.
	RecordItem(ctx context.Context, runID string, res *ItemResult) error

	// FinishRun stores the final counters of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRuns returns runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRunItems returns the items of a run in crawl order.
	FindRunItems(ctx context.Context, runID string) ([]*RunItem, error)
}

package heroscrape

import "context"

// WorkQueue is a first-in first-out queue of work items that admits each
// URL at most once.
type WorkQueue interface {
	// Push queues an item. Returns false if its URL was already admitted.
	Push(item WorkItem) bool

	// Pop returns the oldest queued item.
	// Returns false if the queue is empty.
	Pop() (WorkItem, bool)

	// Len returns the number of queued items.
	Len() int

	// Seen reports whether the URL has been admitted.
	Seen(url string) bool
}

// DomainLimiter provides per-host request pacing.
type DomainLimiter interface {
	// Wait blocks until a request to the host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}

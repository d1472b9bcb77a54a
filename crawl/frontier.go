package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/bloom"
)

// Compile-time interface verification.
var _ heroscrape.WorkQueue = (*Frontier)(nil)

// Frontier sizing.
const (
	// DefaultFrontierSize is the expected number of URLs for Bloom filter sizing.
	DefaultFrontierSize = 10000
	// DefaultFalsePositiveRate is the acceptable false positive rate for deduplication.
	DefaultFalsePositiveRate = 0.001
)

// Frontier is an in-memory FIFO of work items with Bloom filter
// deduplication. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	items []heroscrape.WorkItem
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push queues item unless its URL was admitted before. URLs differing only
// by fragment are duplicates; the queued item carries the URL without it.
func (f *Frontier) Push(item heroscrape.WorkItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	item.URL = stripFragment(item.URL)
	if !f.seen.Admit(item.URL) {
		return false
	}
	f.items = append(f.items, item)
	return true
}

// Pop returns the oldest queued item.
func (f *Frontier) Pop() (heroscrape.WorkItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == 0 {
		return heroscrape.WorkItem{}, false
	}
	item := f.items[0]
	f.items = f.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Seen reports whether the URL has been admitted.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Has(stripFragment(rawURL))
}

// Drain pops every queued item in order.
func Drain(q heroscrape.WorkQueue) []heroscrape.WorkItem {
	var items []heroscrape.WorkItem
	for {
		item, ok := q.Pop()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

func stripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i != -1 {
		return rawURL[:i]
	}
	return rawURL
}

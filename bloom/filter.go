// Package bloom tracks admitted crawl URLs with a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records which keys have been admitted. A key that was never added
// is reported as present with at most the configured false positive rate;
// an added key is always reported as present.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Admit adds key and reports whether it was absent before.
func (f *Filter) Admit(key string) bool {
	return !f.f.TestAndAddString(key)
}

// Has reports whether key may have been admitted.
func (f *Filter) Has(key string) bool {
	return f.f.TestString(key)
}

// Count returns the approximate number of admitted keys.
func (f *Filter) Count() uint {
	return uint(f.f.ApproximatedSize())
}

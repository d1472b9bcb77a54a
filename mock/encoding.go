package mock

import "github.com/fwojciec/heroscrape"

var _ heroscrape.EncodingResolver = (*EncodingResolver)(nil)

// EncodingResolver is a mock implementation of heroscrape.EncodingResolver.
type EncodingResolver struct {
	ResolveFn func(b []byte) (string, string)
}

func (r *EncodingResolver) Resolve(b []byte) (string, string) {
	return r.ResolveFn(b)
}

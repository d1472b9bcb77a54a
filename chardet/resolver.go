// Package chardet implements heroscrape.EncodingResolver using statistical
// charset detection with a fixed fallback chain of Chinese encodings.
package chardet

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/heroscrape"
	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Ensure Resolver implements heroscrape.EncodingResolver at compile time.
var _ heroscrape.EncodingResolver = (*Resolver)(nil)

// DefaultConfidence is the minimum detector confidence (0-100) at which the
// detected charset is tried before the fallback chain.
const DefaultConfidence = 70

// DefaultFallbacks is the decode order used when detection is not trusted.
func DefaultFallbacks() []string {
	return []string{"gbk", "gb2312", "utf-8", "big5"}
}

// detectorAliases maps detector charset names to WHATWG labels.
var detectorAliases = map[string]string{
	"gb-18030": "gb18030",
}

// Resolver decodes page bodies.
type Resolver struct {
	detector   *chardet.Detector
	confidence int
	fallbacks  []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfidence sets the detector confidence threshold.
func WithConfidence(c int) Option {
	return func(r *Resolver) {
		r.confidence = c
	}
}

// WithFallbacks replaces the fallback decode order.
func WithFallbacks(labels ...string) Option {
	return func(r *Resolver) {
		r.fallbacks = labels
	}
}

// NewResolver creates a Resolver with the default threshold and fallbacks.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		detector:   chardet.NewTextDetector(),
		confidence: DefaultConfidence,
		fallbacks:  DefaultFallbacks(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve decodes b. The detected charset is used when the detector is
// confident and decoding succeeds; otherwise the fallback labels are tried
// in order. If nothing decodes cleanly the body is read as UTF-8 with
// invalid sequences replaced by U+FFFD.
func (r *Resolver) Resolve(b []byte) (string, string) {
	if res, err := r.detector.DetectBest(b); err == nil && res != nil && res.Confidence >= r.confidence {
		label := strings.ToLower(res.Charset)
		if alias, ok := detectorAliases[label]; ok {
			label = alias
		}
		if text, ok := Decode(label, b); ok {
			return text, label
		}
	}

	for _, label := range r.fallbacks {
		if text, ok := Decode(label, b); ok {
			return text, label
		}
	}

	return strings.ToValidUTF8(string(b), "�"), "utf-8"
}

// Decode strictly decodes b with the encoding named by label. It reports
// false for unknown labels and for input that does not decode cleanly.
func Decode(label string, b []byte) (string, bool) {
	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", false
	}
	if name == "utf-8" {
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	}
	return decodeStrict(enc, b)
}

// decodeStrict decodes b and rejects output containing replacement
// characters, which x/text decoders emit for invalid byte sequences.
func decodeStrict(enc encoding.Encoding, b []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

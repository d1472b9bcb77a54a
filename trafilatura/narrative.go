// Package trafilatura supplies narrative paragraphs from the main content
// that go-trafilatura recognizes on a page.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/heroscrape"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure NarrativeSource implements heroscrape.NarrativeSource at compile time.
var _ heroscrape.NarrativeSource = (*NarrativeSource)(nil)

// NarrativeSource wraps go-trafilatura main-content extraction.
type NarrativeSource struct {
	// Fallback enables the readability and dom-distiller comparison passes.
	Fallback bool
}

// NewNarrativeSource creates a NarrativeSource with fallback extraction on.
func NewNarrativeSource() *NarrativeSource {
	return &NarrativeSource{Fallback: true}
}

// Paragraphs returns the non-empty lines of the extracted main-content text.
func (s *NarrativeSource) Paragraphs(rawHTML string) ([]string, error) {
	if rawHTML == "" {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: s.Fallback,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var paragraphs []string
	for _, line := range strings.Split(result.ContentText, "\n") {
		if line = heroscrape.Normalize(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs, nil
}

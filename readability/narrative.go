// Package readability supplies narrative paragraphs from the article that
// go-readability recognizes on a page.
package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
	"github.com/go-shiori/go-readability"
)

// Ensure NarrativeSource implements heroscrape.NarrativeSource at compile time.
var _ heroscrape.NarrativeSource = (*NarrativeSource)(nil)

// NarrativeSource wraps go-readability article extraction.
type NarrativeSource struct{}

// NewNarrativeSource creates a new NarrativeSource.
func NewNarrativeSource() *NarrativeSource {
	return &NarrativeSource{}
}

// Paragraphs returns the text of each paragraph in the extracted article.
func (s *NarrativeSource) Paragraphs(rawHTML string) ([]string, error) {
	if rawHTML == "" {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), &url.URL{})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "failed to parse article: %v", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := heroscrape.Normalize(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs, nil
}

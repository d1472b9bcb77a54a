package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
)

// Ensure Harvester implements heroscrape.LinkHarvester at compile time.
var _ heroscrape.LinkHarvester = (*Harvester)(nil)

// DefaultDetailMarker is the href fragment that identifies detail pages.
const DefaultDetailMarker = heroscrape.DetailMarker

// Harvester collects labelled detail-page links from a listing page.
type Harvester struct {
	// Marker must appear in an href for the link to be kept.
	Marker string
}

// NewHarvester creates a Harvester using DefaultDetailMarker.
func NewHarvester() *Harvester {
	return &Harvester{Marker: DefaultDetailMarker}
}

// HarvestLinks parses HTML and returns its detail links.
func (h *Harvester) HarvestLinks(raw string, baseURL string) ([]heroscrape.LinkEntry, error) {
	doc, err := ParseHTML(raw)
	if err != nil {
		return nil, err
	}
	return h.Harvest(doc, baseURL)
}

// Harvest returns links whose href contains the marker and whose label is
// non-empty, resolved against baseURL. Duplicate URLs keep the first label.
func (h *Harvester) Harvest(doc *goquery.Document, baseURL string) ([]heroscrape.LinkEntry, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "invalid base URL: %v", err)
	}

	marker := h.Marker
	if marker == "" {
		marker = DefaultDetailMarker
	}

	var links []heroscrape.LinkEntry
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, marker) {
			return
		}
		label := heroscrape.Normalize(sel.Text())
		if label == "" {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, heroscrape.LinkEntry{Label: label, URL: resolved})
	})
	return links, nil
}

// resolveURL resolves href against base, dropping fragments. Non-HTTP
// schemes resolve to "".
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

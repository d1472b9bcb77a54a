package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
)

// Ensure ListingExtractor implements heroscrape.ListingExtractor at compile time.
var _ heroscrape.ListingExtractor = (*ListingExtractor)(nil)

// Listing text limits.
const (
	maxListingTexts    = 50
	minListingTextLen  = 5
	minListingEntryLen = 10
)

// noiseTextRe matches text made only of digits, spaces and separators.
var noiseTextRe = regexp.MustCompile(`^[\d\s\-_.]+$`)

// listingHeadings are the heading levels reported for a listing page.
var listingHeadings = []string{"h1", "h2", "h3"}

// ListingExtractor builds the flat report of a listing page.
type ListingExtractor struct {
	Harvester *Harvester
}

// NewListingExtractor creates a ListingExtractor with the default harvester.
func NewListingExtractor() *ListingExtractor {
	return &ListingExtractor{Harvester: NewHarvester()}
}

// ExtractListing parses HTML and builds the listing report.
func (e *ListingExtractor) ExtractListing(raw string, baseURL string) (*heroscrape.ListingPage, error) {
	doc, err := ParseHTML(raw)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc, baseURL)
}

// Extract builds the report from a parsed document: the page title, the
// distinct heading texts per level, the detail links, and the remaining
// page text. Page text repeating the title, a heading or a link label is
// dropped.
func (e *ListingExtractor) Extract(doc *goquery.Document, baseURL string) (*heroscrape.ListingPage, error) {
	// Title first: StripNonContent does not touch <title>.
	page := &heroscrape.ListingPage{
		Title: heroscrape.Normalize(doc.Find("title").First().Text()),
	}
	StripNonContent(doc)

	seen := heroscrape.NewSeenSet()
	for _, tag := range listingHeadings {
		headings := doc.Find(tag)
		if headings.Length() == 0 {
			continue
		}
		group := heroscrape.HeadingGroup{Level: strings.ToUpper(tag)}
		headings.Each(func(_ int, sel *goquery.Selection) {
			if text := heroscrape.Normalize(sel.Text()); text != "" && seen.Add(text) {
				group.Entries = append(group.Entries, text)
			}
		})
		page.Headings = append(page.Headings, group)
	}

	h := e.Harvester
	if h == nil {
		h = NewHarvester()
	}
	links, err := h.Harvest(doc, baseURL)
	if err != nil {
		return nil, err
	}
	page.Links = links

	seen.Add(page.Title)
	for _, l := range links {
		seen.Add(l.Label)
	}
	for _, text := range pageTexts(doc.Selection) {
		if heroscrape.RuneLen(text) > minListingEntryLen && seen.Add(text) {
			page.Texts = append(page.Texts, text)
		}
	}

	return page, nil
}

// pageTexts returns the first text nodes that are long enough and not
// purely numeric noise.
func pageTexts(sel *goquery.Selection) []string {
	var out []string
	for _, text := range textNodes(sel) {
		if heroscrape.RuneLen(text) < minListingTextLen || noiseTextRe.MatchString(text) {
			continue
		}
		out = append(out, text)
		if len(out) == maxListingTexts {
			break
		}
	}
	return out
}

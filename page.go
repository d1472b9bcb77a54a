package heroscrape

import "context"

// PageKind distinguishes hero detail pages from listing pages.
type PageKind string

// Page kinds.
const (
	KindDetail PageKind = "detail"
	KindList   PageKind = "list"
)

// RawPage holds the undecoded body of a fetched page.
type RawPage struct {
	URL    string
	Status int
	Body   []byte
}

// DecodedPage holds page text after encoding resolution. URL is the final
// URL of the fetch and serves as the base for relative links.
type DecodedPage struct {
	URL      string
	Text     string
	Encoding string
}

// WorkItem is one unit of crawl work.
type WorkItem struct {
	URL  string   `yaml:"url"`
	Kind PageKind `yaml:"kind"`
	// HintName is used as the hero name when extraction recovers none.
	HintName string `yaml:"hint_name"`
}

// LinkEntry is a labelled link to a detail page.
type LinkEntry struct {
	Label string
	URL   string
}

// HeadingGroup lists the distinct heading texts found at one heading level.
type HeadingGroup struct {
	Level   string // "H1", "H2", "H3"
	Entries []string
}

// ListingPage is the structured report of a listing page.
type ListingPage struct {
	Title    string
	Headings []HeadingGroup
	Links    []LinkEntry
	Texts    []string
}

// Fetcher retrieves raw page bytes.
type Fetcher interface {
	// Fetch requests the URL and returns the undecoded body.
	// Network failures and non-success statuses are returned as errors.
	Fetch(ctx context.Context, url string) (*RawPage, error)
}

// EncodingResolver decides the text encoding of a page body.
type EncodingResolver interface {
	// Resolve decodes b and names the encoding used. It never fails;
	// undecodable input degrades to UTF-8 with replacement characters.
	Resolve(b []byte) (text string, encoding string)
}

// LinkHarvester extracts detail-page links from a listing page.
type LinkHarvester interface {
	// HarvestLinks returns links whose href identifies a detail page,
	// resolved against baseURL and deduplicated by URL in first-seen order.
	HarvestLinks(html string, baseURL string) ([]LinkEntry, error)
}

// ListingExtractor builds the listing report for a listing page.
type ListingExtractor interface {
	ExtractListing(html string, baseURL string) (*ListingPage, error)
}

package mock

import "github.com/fwojciec/heroscrape"

var _ heroscrape.HeroExtractor = (*HeroExtractor)(nil)

// HeroExtractor is a mock implementation of heroscrape.HeroExtractor.
type HeroExtractor struct {
	ExtractHeroFn func(html string) (*heroscrape.HeroRecord, error)
}

func (e *HeroExtractor) ExtractHero(html string) (*heroscrape.HeroRecord, error) {
	return e.ExtractHeroFn(html)
}

var _ heroscrape.NarrativeSource = (*NarrativeSource)(nil)

// NarrativeSource is a mock implementation of heroscrape.NarrativeSource.
type NarrativeSource struct {
	ParagraphsFn func(html string) ([]string, error)
}

func (s *NarrativeSource) Paragraphs(html string) ([]string, error) {
	return s.ParagraphsFn(html)
}

var _ heroscrape.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of heroscrape.ListingExtractor.
type ListingExtractor struct {
	ExtractListingFn func(html, baseURL string) (*heroscrape.ListingPage, error)
}

func (e *ListingExtractor) ExtractListing(html, baseURL string) (*heroscrape.ListingPage, error) {
	return e.ExtractListingFn(html, baseURL)
}

var _ heroscrape.LinkHarvester = (*LinkHarvester)(nil)

// LinkHarvester is a mock implementation of heroscrape.LinkHarvester.
type LinkHarvester struct {
	HarvestLinksFn func(html, baseURL string) ([]heroscrape.LinkEntry, error)
}

func (h *LinkHarvester) HarvestLinks(html, baseURL string) ([]heroscrape.LinkEntry, error) {
	return h.HarvestLinksFn(html, baseURL)
}

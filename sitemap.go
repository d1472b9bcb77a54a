package heroscrape

import (
	"context"
	"regexp"
	"strings"
)

// SitemapService lists page URLs published in a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs reachable from sitemapURL in
	// document order, without duplicates. sitemapURL may name a sitemap
	// or sitemap index directly; any other URL is resolved through the
	// site's robots.txt and then /sitemap.xml. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, sitemapURL string, filter *URLFilter) ([]string, error)
}

// DetailMarker is the URL fragment that identifies hero detail pages.
const DetailMarker = "herodetail"

// URLFilter selects page URLs.
type URLFilter struct {
	// Marker, if set, must appear in the URL.
	Marker string

	// Exclude drops URLs matching any pattern.
	Exclude []*regexp.Regexp
}

// DetailFilter keeps URLs that contain the detail-page marker.
func DetailFilter(marker string) *URLFilter {
	return &URLFilter{Marker: marker}
}

// Match reports whether url passes the filter. A nil filter matches all.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if f.Marker != "" && !strings.Contains(url, f.Marker) {
		return false
	}
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}
	return true
}

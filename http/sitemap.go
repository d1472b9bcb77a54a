package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/heroscrape"
)

// Ensure SitemapService implements heroscrape.SitemapService.
var _ heroscrape.SitemapService = (*SitemapService)(nil)

// maxSitemaps bounds how many sitemap documents one discovery reads.
const maxSitemaps = 100

// SitemapService reads sitemaps over HTTP and parses them with etree.
type SitemapService struct {
	client *http.Client
	header http.Header
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient; header is sent with every request and may be nil.
func NewSitemapService(client *http.Client, header http.Header) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, header: header}
}

// DiscoverURLs walks the sitemaps reachable from sitemapURL breadth first
// and returns the page URLs that pass filter. Returns an empty slice (not
// nil) when the site publishes no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *heroscrape.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start, err := url.Parse(sitemapURL)
	if err != nil || start.Host == "" {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "invalid sitemap URL %q", sitemapURL)
	}

	queue := []string{sitemapURL}
	if !strings.HasSuffix(start.Path, ".xml") {
		queue, err = s.locateSitemaps(ctx, start)
		if err != nil {
			return nil, err
		}
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for len(queue) > 0 && len(seenSitemaps) < maxSitemaps {
		next := queue[0]
		queue = queue[1:]
		if seenSitemaps[next] {
			continue
		}
		seenSitemaps[next] = true

		children, pages, err := s.readSitemap(ctx, next)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
		for _, u := range pages {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// locateSitemaps returns the sitemaps declared in robots.txt, falling back
// to /sitemap.xml when it exists.
func (s *SitemapService) locateSitemaps(ctx context.Context, site *url.URL) ([]string, error) {
	root := &url.URL{Scheme: site.Scheme, Host: site.Host}

	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robotsURL); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	body, err := s.get(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	body.Close()
	return []string{fallback}, nil
}

// robotsSitemaps extracts Sitemap: directives from robots.txt.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len(directive) && strings.EqualFold(line[:len(directive)], directive) {
			if loc := strings.TrimSpace(line[len(directive):]); loc != "" {
				sitemaps = append(sitemaps, loc)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// readSitemap fetches one sitemap document. A <sitemapindex> yields child
// sitemaps; a <urlset> yields page URLs.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (children, pages []string, err error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, nil, heroscrape.Errorf(heroscrape.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, heroscrape.Errorf(heroscrape.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return locs(root, "sitemap"), nil, nil
	default:
		return nil, locs(root, "url"), nil
	}
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// get performs a GET and returns the body of a 200 response.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range s.header {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, heroscrape.Errorf(heroscrape.EFETCH, "fetching %s: %v", targetURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, heroscrape.Errorf(heroscrape.EFETCH, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

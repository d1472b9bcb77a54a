// Package http provides net/http implementations of heroscrape.Fetcher
// and heroscrape.SitemapService for static, server-rendered pages.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/heroscrape"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxRedirects caps the redirects followed for one request.
const DefaultMaxRedirects = 10

// DefaultUserAgent identifies requests as a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultReferer is sent with every request.
const DefaultReferer = "https://pvp.qq.com/"

// Ensure Fetcher implements heroscrape.Fetcher at compile time.
var _ heroscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw page bytes over HTTP. It does not execute
// JavaScript and leaves charset handling to a heroscrape.EncodingResolver.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	header       http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.header.Set("User-Agent", ua)
		}
	}
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// DefaultHeader returns the browser-like headers sent with every request.
// Accept-Encoding is left to the transport so gzip is decoded transparently.
func DefaultHeader() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Referer", DefaultReferer)
	return h
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		header:       DefaultHeader(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:       f.timeout,
		CheckRedirect: f.checkRedirect,
	}

	return f
}

// Client returns the underlying HTTP client, for services that should share
// its timeout and redirect policy.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Header returns a copy of the headers sent with every request.
func (f *Fetcher) Header() http.Header {
	return f.header.Clone()
}

func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= f.maxRedirects {
		return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
	}
	return nil
}

// Fetch retrieves the body of url. Transport failures, timeouts and
// non-2xx statuses are returned as EFETCH errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*heroscrape.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header = f.header.Clone()

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, heroscrape.Errorf(heroscrape.EFETCH, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, heroscrape.Errorf(heroscrape.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EFETCH, "reading %s: %v", url, err)
	}

	return &heroscrape.RawPage{
		URL:    resp.Request.URL.String(),
		Status: resp.StatusCode,
		Body:   body,
	}, nil
}

package crawl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/heroscrape"
)

// Default crawl targets.
const (
	DefaultDetailURL = "https://pvp.qq.com/web201605/herodetail/chicha.shtml"
	DefaultListURL   = "https://pvp.qq.com/web201605/herolist.shtml"
)

// listMarker identifies listing pages among plain URL seeds.
const listMarker = "herolist"

// DefaultSeeds returns the fixed seed batch: one detail page and the
// hero listing page.
func DefaultSeeds() []heroscrape.WorkItem {
	return []heroscrape.WorkItem{
		{URL: DefaultDetailURL, Kind: heroscrape.KindDetail},
		{URL: DefaultListURL, Kind: heroscrape.KindList},
	}
}

// Classify returns the page kind of a plain URL seed.
func Classify(url string) heroscrape.PageKind {
	if strings.Contains(url, listMarker) {
		return heroscrape.KindList
	}
	return heroscrape.KindDetail
}

// Planner turns crawl modes into ordered work items.
type Planner struct {
	Fetcher   heroscrape.Fetcher
	Resolver  heroscrape.EncodingResolver
	Harvester heroscrape.LinkHarvester
	Sitemaps  heroscrape.SitemapService

	// Marker selects detail pages from sitemaps. Defaults to
	// heroscrape.DetailMarker.
	Marker string

	// Logger defaults to discarding.
	Logger *slog.Logger
}

// Seeds classifies plain URLs in order. Repeated URLs are kept once.
func (p *Planner) Seeds(urls []string) []heroscrape.WorkItem {
	q := NewFrontier(uint(max(len(urls), 1)), DefaultFalsePositiveRate)
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		q.Push(heroscrape.WorkItem{URL: u, Kind: Classify(u)})
	}
	return Drain(q)
}

// AllHeroes harvests detail links from each listing page and returns one
// detail item per distinct link, labelled with its link text as the hint
// name. A listing page that cannot be fetched is logged and skipped; the
// error is returned only when every listing page failed.
func (p *Planner) AllHeroes(ctx context.Context, listURLs []string) ([]heroscrape.WorkItem, error) {
	if len(listURLs) == 0 {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "no listing pages given")
	}

	q := NewFrontier(DefaultFrontierSize, DefaultFalsePositiveRate)
	var lastErr error
	harvested := 0
	for _, listURL := range listURLs {
		links, err := p.harvest(ctx, listURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger().Warn("listing page skipped", "url", listURL, "err", err)
			lastErr = err
			continue
		}
		harvested++
		for _, l := range links {
			q.Push(heroscrape.WorkItem{URL: l.URL, Kind: heroscrape.KindDetail, HintName: l.Label})
		}
	}
	if harvested == 0 {
		return nil, lastErr
	}

	items := Drain(q)
	p.logger().Info("harvested detail links", "pages", harvested, "links", len(items))
	return items, nil
}

// FromSitemap returns one detail item per detail-page URL published in the
// site's sitemaps.
func (p *Planner) FromSitemap(ctx context.Context, sitemapURL string) ([]heroscrape.WorkItem, error) {
	marker := p.Marker
	if marker == "" {
		marker = heroscrape.DetailMarker
	}
	urls, err := p.Sitemaps.DiscoverURLs(ctx, sitemapURL, heroscrape.DetailFilter(marker))
	if err != nil {
		return nil, err
	}

	items := make([]heroscrape.WorkItem, 0, len(urls))
	for _, u := range urls {
		items = append(items, heroscrape.WorkItem{URL: u, Kind: heroscrape.KindDetail})
	}
	return items, nil
}

// Links fetches one listing page and returns its detail links.
func (p *Planner) Links(ctx context.Context, listURL string) ([]heroscrape.LinkEntry, error) {
	return p.harvest(ctx, listURL)
}

func (p *Planner) harvest(ctx context.Context, listURL string) ([]heroscrape.LinkEntry, error) {
	raw, err := p.Fetcher.Fetch(ctx, listURL)
	if err != nil {
		return nil, err
	}
	text, _ := p.Resolver.Resolve(raw.Body)
	base := listURL
	if raw.URL != "" {
		base = raw.URL
	}
	return p.Harvester.HarvestLinks(text, base)
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

package main

import (
	"fmt"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	items, err := c.plan(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages to crawl.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d pages into %s\n", len(items), deps.Settings.OutputDir)

	progress := func(event crawl.ProgressEvent) {
		if line := crawl.FormatProgress(event); line != "" {
			fmt.Fprintln(deps.Stdout, line)
		}
	}

	run, err := deps.Driver.Run(deps.Ctx, items, progress)
	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(run))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "crawl interrupted: %v\n", err)
		return err
	}
	if run.Saved == 0 {
		return fmt.Errorf("no pages saved")
	}
	return nil
}

// plan builds the work items for the selected crawl mode: a sitemap, all
// heroes from listing pages, the given URLs, the configured seeds, or the
// default seeds.
func (c *CrawlCmd) plan(deps *Dependencies) ([]heroscrape.WorkItem, error) {
	s := deps.Settings
	switch {
	case c.Sitemap != "":
		return deps.Planner.FromSitemap(deps.Ctx, c.Sitemap)
	case c.All:
		listURLs := s.ListURLs
		if len(listURLs) == 0 {
			listURLs = []string{crawl.DefaultListURL}
		}
		return deps.Planner.AllHeroes(deps.Ctx, listURLs)
	case len(c.URLs) > 0:
		return deps.Planner.Seeds(c.URLs), nil
	case len(s.Seeds) > 0:
		return deps.Planner.Seeds(s.Seeds), nil
	default:
		return crawl.DefaultSeeds(), nil
	}
}

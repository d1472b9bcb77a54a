package main

import (
	"fmt"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/crawl"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	listURL := c.ListURL
	if listURL == "" {
		listURL = crawl.DefaultListURL
	}

	links, err := deps.Planner.Links(deps.Ctx, listURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No hero links found.")
		return nil
	}

	for _, l := range links {
		fmt.Fprintf(deps.Stdout, "%s -> %s\n", l.Label, l.URL)
	}
	fmt.Fprintf(deps.Stdout, "%d links\n", len(links))
	return nil
}

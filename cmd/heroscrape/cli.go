package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/catalog"
	"github.com/fwojciec/heroscrape/config"
	"github.com/fwojciec/heroscrape/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Settings config.Settings
	Planner  *crawl.Planner
	Driver   *crawl.Driver
	Ledger   heroscrape.Ledger
	Catalog  *catalog.Builder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"YAML config file (default: ./.heroscrape.yaml or ~/.heroscrape.yaml)" type:"path"`
	Verbose bool   `short:"v" help:"Log debug details to stderr"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl hero pages and save them as text artifacts"`
	Links   LinksCmd   `cmd:"" help:"List hero detail links found on a listing page"`
	Catalog CatalogCmd `cmd:"" help:"Build a JSON catalogue from saved detail artifacts"`
	History HistoryCmd `cmd:"" help:"Show recent crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs           []string      `arg:"" optional:"" name:"url" help:"Pages to crawl; URLs containing 'herolist' are listing pages"`
	All            bool          `short:"a" help:"Crawl every hero linked from the listing pages"`
	ListURL        []string      `name:"list-url" help:"Listing page harvested by --all (repeatable)"`
	Sitemap        string        `help:"Crawl the detail pages published in this sitemap or site"`
	Delay          time.Duration `help:"Pause between pages (default 2s)"`
	Timeout        time.Duration `short:"t" help:"Per-request timeout (default 30s)"`
	NoPaceFailures bool          `name:"no-pace-failures" help:"Skip the pause after a page that failed"`
	Retry          bool          `help:"Retry failed fetches after 1s, 2s and 4s"`
	HostInterval   time.Duration `name:"host-interval" help:"Minimum interval between requests to one host"`
	Out            string        `short:"o" help:"Output directory (default scraped_content)"`
	UserAgent      string        `name:"user-agent" help:"User-Agent header"`
	Narrative      string        `help:"Story fallback when no paragraph qualifies: trafilatura, readability or none"`
	DB             string        `help:"Run ledger database (default: HEROSCRAPE_DB or ~/.heroscrape/runs.db)"`
	NoLedger       bool          `name:"no-ledger" help:"Do not record the run"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	ListURL string `arg:"" optional:"" name:"list-url" help:"Listing page (default: the hero list)"`
}

// CatalogCmd is the "catalog" subcommand.
type CatalogCmd struct {
	In    string `help:"Directory of saved artifacts (default: the crawl output directory)"`
	Out   string `short:"o" help:"Output JSON file, or - for stdout (default heroes_skill<N>_data.json)"`
	Skill int    `default:"4" help:"Skill number to catalogue"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"n" default:"10" help:"Number of runs to show"`
	RunID string `name:"run" help:"Show the items of one run"`
	DB    string `help:"Run ledger database (default: HEROSCRAPE_DB or ~/.heroscrape/runs.db)"`
}

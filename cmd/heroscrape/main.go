package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/catalog"
	"github.com/fwojciec/heroscrape/chardet"
	"github.com/fwojciec/heroscrape/config"
	"github.com/fwojciec/heroscrape/crawl"
	"github.com/fwojciec/heroscrape/fs"
	"github.com/fwojciec/heroscrape/goquery"
	herohttp "github.com/fwojciec/heroscrape/http"
	"github.com/fwojciec/heroscrape/readability"
	heroslog "github.com/fwojciec/heroscrape/slog"
	"github.com/fwojciec/heroscrape/sqlite"
	"github.com/fwojciec/heroscrape/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when no --db flag is given. Set before calling Run().
	DBPath string

	// SQLite database backing the run ledger, when opened.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("heroscrape"),
		kong.Description("Crawl hero detail and listing pages into plain-text artifacts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'heroscrape --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	file, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	deps.Settings = config.Defaults().Apply(file)

	switch command(kongCtx) {
	case "crawl":
		deps.Settings = cli.Crawl.apply(deps.Settings)
		if err := m.wireCrawl(deps, &cli.Crawl); err != nil {
			return err
		}
	case "links":
		m.wirePlanner(deps)
	case "catalog":
		deps.Catalog = catalog.NewBuilder()
		deps.Catalog.Logger = deps.Logger
	case "history":
		if err := m.openLedger(deps, cli.History.DB); err != nil {
			return err
		}
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// command returns the name of the selected subcommand.
func command(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// loadConfig loads the explicit config file, or the default one if present.
// An explicit path that does not exist is an error.
func loadConfig(path string) (*config.File, error) {
	found := config.Find(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrNotFound, path)
		}
		return nil, nil
	}
	f, err := config.Load(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", found, err)
	}
	return f, nil
}

// apply overlays the flags given on the command line. Zero values keep
// the configured settings.
func (c *CrawlCmd) apply(s config.Settings) config.Settings {
	if c.Delay > 0 {
		s.Delay = c.Delay
	}
	if c.Timeout > 0 {
		s.Timeout = c.Timeout
	}
	if c.NoPaceFailures {
		s.PaceFailures = false
	}
	if c.Retry {
		s.Retry = true
	}
	if c.Out != "" {
		s.OutputDir = c.Out
	}
	if c.UserAgent != "" {
		s.UserAgent = c.UserAgent
	}
	if c.Narrative != "" {
		s.Narrative = c.Narrative
	}
	if len(c.ListURL) > 0 {
		s.ListURLs = c.ListURL
	}
	return s
}

func (m *Main) wirePlanner(deps *Dependencies) {
	s := deps.Settings
	opts := []herohttp.Option{herohttp.WithTimeout(s.Timeout)}
	if s.UserAgent != "" {
		opts = append(opts, herohttp.WithUserAgent(s.UserAgent))
	}
	fetcher := herohttp.NewFetcher(opts...)

	marker := s.DetailMarker
	if marker == "" {
		marker = heroscrape.DetailMarker
	}

	deps.Planner = &crawl.Planner{
		Fetcher:   heroslog.NewLoggingFetcher(fetcher, deps.Logger),
		Resolver:  chardet.NewResolver(),
		Harvester: &goquery.Harvester{Marker: marker},
		Sitemaps: heroslog.NewLoggingSitemapService(
			herohttp.NewSitemapService(fetcher.Client(), fetcher.Header()), deps.Logger),
		Marker: marker,
		Logger: deps.Logger,
	}
}

func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd) error {
	s := deps.Settings
	narrative, err := narrativeSource(s.Narrative)
	if err != nil {
		return err
	}

	m.wirePlanner(deps)
	extractor := goquery.NewExtractor()
	extractor.Narrative = narrative

	driver := &crawl.Driver{
		Fetcher:  deps.Planner.Fetcher,
		Resolver: deps.Planner.Resolver,
		Heroes:   extractor,
		Listings: &goquery.ListingExtractor{Harvester: &goquery.Harvester{Marker: deps.Planner.Marker}},
		Writer:   heroslog.NewLoggingWriter(fs.NewWriter(s.OutputDir), deps.Logger),
		Limiter:  crawl.NewDomainLimiter(c.HostInterval),
		Pacer:    &crawl.Pacer{Delay: s.Delay, Failures: s.PaceFailures},
		Logger:   deps.Logger,
	}
	if s.Retry {
		driver.RetryDelays = crawl.BackoffDelays()
	}

	if !c.NoLedger {
		if err := m.openLedger(deps, c.DB); err != nil {
			// The ledger is optional for crawling.
			deps.Logger.Warn("run ledger unavailable", "err", err)
		} else {
			driver.Ledger = deps.Ledger
		}
	}

	deps.Driver = driver
	return nil
}

func (m *Main) openLedger(deps *Dependencies, path string) error {
	if path == "" {
		path = m.DBPath
	}
	if dir := filepath.Dir(path); path != sqlite.MemoryPath && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(deps.Stderr, "Hint: Set HEROSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Ledger = sqlite.NewLedger(m.DB)
	return nil
}

// narrativeSource returns the story fallback named by name.
func narrativeSource(name string) (heroscrape.NarrativeSource, error) {
	switch name {
	case "", config.NarrativeTrafilatura:
		return trafilatura.NewNarrativeSource(), nil
	case config.NarrativeReadability:
		return readability.NewNarrativeSource(), nil
	case config.NarrativeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown narrative source %q: want trafilatura, readability or none", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("HEROSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "heroscrape.db"
	}
	return filepath.Join(home, ".heroscrape", "runs.db")
}

// Package crawl runs batch crawls: it plans work items from seeds, listing
// pages and sitemaps, then fetches, extracts and persists them one at a
// time with pacing between requests.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/heroscrape"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressItem
	ProgressFinished
)

// ProgressEvent reports progress during a batch crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	// Result is set for ProgressItem events.
	Result *heroscrape.ItemResult
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Driver processes work items sequentially in input order. A failure of one
// item is recorded and never stops the batch.
type Driver struct {
	Fetcher  heroscrape.Fetcher
	Resolver heroscrape.EncodingResolver
	Heroes   heroscrape.HeroExtractor
	Listings heroscrape.ListingExtractor
	Writer   heroscrape.ArtifactWriter

	// Ledger, if set, records the run and each item outcome.
	Ledger heroscrape.Ledger

	// Limiter, if set, is waited on per host before each fetch.
	Limiter heroscrape.DomainLimiter

	// Pacer inserts the delay between items. Nil disables pacing.
	Pacer *Pacer

	// RetryDelays are waited between fetch attempts. Empty means one attempt.
	RetryDelays []time.Duration

	// Logger receives retry and ledger diagnostics. Defaults to discarding.
	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run processes items and returns the run summary. It returns early only
// when ctx is canceled, with the summary of the items finished so far and
// the context error.
func (d *Driver) Run(ctx context.Context, items []heroscrape.WorkItem, progress ProgressFunc) (*heroscrape.Run, error) {
	run := &heroscrape.Run{StartedAt: d.now(), Total: len(items)}
	ledger := d.Ledger
	if ledger != nil {
		if err := ledger.CreateRun(ctx, run); err != nil {
			d.logger().Warn("ledger disabled for run", "err", err)
			ledger = nil
		}
	}

	emit := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}
	emit(ProgressEvent{Type: ProgressStarted, Total: len(items)})

	var runErr error
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := d.process(ctx, i, item)
		if ctx.Err() != nil && res.Status.Failed() {
			// Interrupted, not failed.
			runErr = ctx.Err()
			break
		}

		run.Record(res)
		if ledger != nil {
			if err := ledger.RecordItem(ctx, run.ID, res); err != nil {
				d.logger().Warn("ledger record failed", "url", item.URL, "err", err)
			}
		}
		emit(ProgressEvent{Type: ProgressItem, Completed: i + 1, Total: len(items), Result: res})

		if err := d.Pacer.Between(ctx, res.Status.Failed(), i < len(items)-1); err != nil {
			runErr = err
			break
		}
	}

	run.FinishedAt = d.now()
	if ledger != nil {
		// The run row is finished even if ctx was canceled.
		if err := ledger.FinishRun(context.WithoutCancel(ctx), run); err != nil {
			d.logger().Warn("ledger finish failed", "run", run.ID, "err", err)
		}
	}
	emit(ProgressEvent{Type: ProgressFinished, Completed: run.Saved + run.Failed, Total: len(items)})

	return run, runErr
}

// process fetches, decodes, extracts and persists one item.
func (d *Driver) process(ctx context.Context, position int, item heroscrape.WorkItem) *heroscrape.ItemResult {
	res := &heroscrape.ItemResult{Item: item, Position: position}

	if err := waitURL(ctx, d.Limiter, item.URL); err != nil {
		res.Status = heroscrape.StatusFetchFailed
		res.Err = err
		return res
	}

	raw, err := FetchWithRetry(ctx, d.Fetcher, item.URL, d.RetryDelays, d.logf)
	if err != nil {
		res.Status = heroscrape.StatusFetchFailed
		res.Err = err
		return res
	}

	decoded := d.decode(item.URL, raw)
	res.Encoding = decoded.Encoding
	fetchedAt := d.now()

	partial := false
	switch item.Kind {
	case heroscrape.KindList:
		page, err := d.Listings.ExtractListing(decoded.Text, decoded.URL)
		if err != nil {
			res.Status = heroscrape.StatusSkipped
			res.Err = err
			return res
		}
		res.Body = heroscrape.FormatListing(page)
	default:
		item.Kind = heroscrape.KindDetail
		res.Item.Kind = heroscrape.KindDetail
		rec, err := d.Heroes.ExtractHero(decoded.Text)
		if err != nil {
			res.Status = heroscrape.StatusSkipped
			res.Err = err
			return res
		}
		partial = rec.IsEmpty()
		if rec.Name == "" {
			rec.Name = item.HintName
		}
		res.Name = rec.Name
		res.Body = heroscrape.FormatHero(rec)
	}

	if res.Body == "" {
		res.Status = heroscrape.StatusSkipped
		res.Err = heroscrape.Errorf(heroscrape.EINVALID, "no content extracted from %s", item.URL)
		return res
	}

	artifact := &heroscrape.Artifact{
		Filename:  heroscrape.ArtifactFilename(res.Name, item.URL, item.Kind, fetchedAt),
		SourceURL: item.URL,
		Kind:      item.Kind,
		Body:      res.Body,
		FetchedAt: fetchedAt,
	}
	path, err := d.Writer.WriteArtifact(ctx, artifact)
	if err != nil {
		res.Status = heroscrape.StatusPersistFailed
		res.Err = err
		return res
	}
	res.Path = path

	res.Status = heroscrape.StatusSaved
	if partial {
		res.Status = heroscrape.StatusPartial
	}
	return res
}

// decode resolves the encoding of a fetched body. The page keeps the URL
// the fetch ended at, falling back to the requested one.
func (d *Driver) decode(requested string, raw *heroscrape.RawPage) *heroscrape.DecodedPage {
	text, encoding := d.Resolver.Resolve(raw.Body)
	page := &heroscrape.DecodedPage{URL: requested, Text: text, Encoding: encoding}
	if raw.URL != "" {
		page.URL = raw.URL
	}
	return page
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (d *Driver) logf(format string, args ...any) {
	d.logger().Debug(fmt.Sprintf(format, args...))
}

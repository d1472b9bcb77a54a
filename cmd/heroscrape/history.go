package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/heroscrape"
)

// historyTimeLayout formats run start times.
const historyTimeLayout = "2006-01-02 15:04:05"

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.RunID != "" {
		return c.showItems(deps)
	}

	runs, err := deps.Ledger.FindRuns(deps.Ctx, heroscrape.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'heroscrape crawl' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  saved %d/%d  partial %d  failed %d  %s\n",
			r.ID, r.StartedAt.Local().Format(historyTimeLayout),
			r.Saved, r.Total, r.Partial, r.Failed, runDuration(r))
	}
	return nil
}

func (c *HistoryCmd) showItems(deps *Dependencies) error {
	items, err := deps.Ledger.FindRunItems(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}

	for _, it := range items {
		line := fmt.Sprintf("%3d  %-14s %s", it.Position+1, it.Status, it.URL)
		switch {
		case it.Error != "":
			line += "  " + it.Error
		case it.Path != "":
			line += "  " + it.Path
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}

// runDuration renders how long a run took, or "unfinished".
func runDuration(r *heroscrape.Run) string {
	if r.FinishedAt.IsZero() {
		return "unfinished"
	}
	return r.FinishedAt.Sub(r.StartedAt).Round(100 * time.Millisecond).String()
}

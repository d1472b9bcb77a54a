package crawl

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/heroscrape"
)

// progressURLWidth bounds URLs in progress lines.
const progressURLWidth = 72

// FormatProgress renders an item event as "[i/n] <status> <url>", adding the
// resolved name or the error when present. Other events render as "".
func FormatProgress(ev ProgressEvent) string {
	if ev.Type != ProgressItem || ev.Result == nil {
		return ""
	}
	res := ev.Result

	var b strings.Builder
	fmt.Fprintf(&b, "[%d/%d] %s %s", ev.Completed, ev.Total, res.Status, TruncateURL(res.Item.URL, progressURLWidth))
	switch {
	case res.Err != nil:
		fmt.Fprintf(&b, ": %s", errorText(res.Err))
	case res.Name != "":
		fmt.Fprintf(&b, " (%s)", res.Name)
	}
	return b.String()
}

// FormatSummary renders the final counters of a run.
func FormatSummary(run *heroscrape.Run) string {
	s := fmt.Sprintf("saved %d of %d", run.Saved, run.Total)
	if run.Partial > 0 {
		s += fmt.Sprintf(" (%d without structured data)", run.Partial)
	}
	if run.Failed > 0 {
		s += fmt.Sprintf(", %d failed", run.Failed)
	}
	if !run.StartedAt.IsZero() && !run.FinishedAt.IsZero() {
		s += fmt.Sprintf(" in %s", run.FinishedAt.Sub(run.StartedAt).Round(100*time.Millisecond))
	}
	return s
}

// TruncateURL shortens a URL to at most maxLen characters, keeping the end
// which is more informative.
func TruncateURL(url string, maxLen int) string {
	r := []rune(url)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return url
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return "..." + string(r[len(r)-maxLen+3:])
}

// errorText prefers the message of an application error.
func errorText(err error) string {
	if heroscrape.ErrorCode(err) == heroscrape.EINTERNAL {
		return err.Error()
	}
	return heroscrape.ErrorMessage(err)
}

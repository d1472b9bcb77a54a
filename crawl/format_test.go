package crawl_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("keeps the end of long URLs", func(t *testing.T) {
		t.Parallel()
		result := crawl.TruncateURL("https://pvp.qq.com/web201605/herodetail/chicha.shtml", 20)
		assert.Equal(t, "...tail/chicha.shtml", result)
		assert.Len(t, result, 20)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "...英雄详情", crawl.TruncateURL("https://x.com/王者荣耀英雄详情", 7))
	})

	t.Run("tiny widths", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", crawl.TruncateURL("https://x.com", 0))
		assert.Equal(t, "htt", crawl.TruncateURL("https://x.com", 3))
	})
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	t.Run("saved item with name", func(t *testing.T) {
		t.Parallel()

		got := crawl.FormatProgress(crawl.ProgressEvent{
			Type:      crawl.ProgressItem,
			Completed: 1,
			Total:     3,
			Result: &heroscrape.ItemResult{
				Item:   heroscrape.WorkItem{URL: "https://pvp.qq.com/a.shtml"},
				Status: heroscrape.StatusSaved,
				Name:   "赤茶",
			},
		})

		assert.Equal(t, "[1/3] saved https://pvp.qq.com/a.shtml (赤茶)", got)
	})

	t.Run("failed item with application error", func(t *testing.T) {
		t.Parallel()

		got := crawl.FormatProgress(crawl.ProgressEvent{
			Type:      crawl.ProgressItem,
			Completed: 2,
			Total:     3,
			Result: &heroscrape.ItemResult{
				Item:   heroscrape.WorkItem{URL: "https://pvp.qq.com/b.shtml"},
				Status: heroscrape.StatusFetchFailed,
				Err:    heroscrape.Errorf(heroscrape.EFETCH, "HTTP 404 for https://pvp.qq.com/b.shtml"),
			},
		})

		assert.Equal(t, "[2/3] fetch_failed https://pvp.qq.com/b.shtml: HTTP 404 for https://pvp.qq.com/b.shtml", got)
	})

	t.Run("failed item with plain error", func(t *testing.T) {
		t.Parallel()

		got := crawl.FormatProgress(crawl.ProgressEvent{
			Type:      crawl.ProgressItem,
			Completed: 3,
			Total:     3,
			Result: &heroscrape.ItemResult{
				Item:   heroscrape.WorkItem{URL: "https://pvp.qq.com/c.shtml"},
				Status: heroscrape.StatusPersistFailed,
				Err:    errors.New("disk full"),
			},
		})

		assert.Equal(t, "[3/3] persist_failed https://pvp.qq.com/c.shtml: disk full", got)
	})

	t.Run("non-item events render empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.FormatProgress(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 3}))
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	got := crawl.FormatSummary(&heroscrape.Run{
		StartedAt:  start,
		FinishedAt: start.Add(4 * time.Second),
		Total:      4,
		Saved:      3,
		Partial:    1,
		Failed:     1,
	})

	assert.Equal(t, "saved 3 of 4 (1 without structured data), 1 failed in 4s", got)
}

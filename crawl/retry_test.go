package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/crawl"
	"github.com/fwojciec/heroscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	page := &heroscrape.RawPage{URL: "https://pvp.qq.com/", Status: 200, Body: []byte("ok")}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (*heroscrape.RawPage, error) {
			calls++
			return page, nil
		}}

		got, err := crawl.FetchWithRetry(context.Background(), f, page.URL, []time.Duration{0, 0}, nil)

		require.NoError(t, err)
		assert.Same(t, page, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries once per delay then gives up", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logged []string
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (*heroscrape.RawPage, error) {
			calls++
			return nil, heroscrape.Errorf(heroscrape.EFETCH, "HTTP 503")
		}}

		_, err := crawl.FetchWithRetry(context.Background(), f, page.URL, []time.Duration{0, 0}, func(format string, args ...any) {
			logged = append(logged, format)
		})

		require.Error(t, err)
		assert.Equal(t, heroscrape.EFETCH, heroscrape.ErrorCode(err))
		assert.Equal(t, 3, calls)
		assert.Len(t, logged, 2)
	})

	t.Run("does not retry invalid input", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (*heroscrape.RawPage, error) {
			calls++
			return nil, heroscrape.Errorf(heroscrape.EINVALID, "bad url")
		}}

		_, err := crawl.FetchWithRetry(context.Background(), f, "::", []time.Duration{0, 0}, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		f := &mock.Fetcher{FetchFn: func(context.Context, string) (*heroscrape.RawPage, error) {
			calls++
			cancel()
			return nil, errors.New("connection reset")
		}}

		_, err := crawl.FetchWithRetry(ctx, f, page.URL, []time.Duration{time.Hour}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("backoff delays double", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.BackoffDelays())
	})
}

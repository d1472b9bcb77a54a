package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/crawl"
	"github.com/stretchr/testify/assert"
)

func detail(url string) heroscrape.WorkItem {
	return heroscrape.WorkItem{URL: url, Kind: heroscrape.KindDetail}
}

func TestFrontier_Push(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		assert.True(t, f.Push(detail("https://pvp.qq.com/herodetail/a.shtml")))
		assert.False(t, f.Push(heroscrape.WorkItem{URL: "https://pvp.qq.com/herodetail/a.shtml", HintName: "other"}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("treats fragments as duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		assert.True(t, f.Push(detail("https://pvp.qq.com/herodetail/a.shtml#skills")))
		assert.False(t, f.Push(detail("https://pvp.qq.com/herodetail/a.shtml")))
		assert.True(t, f.Seen("https://pvp.qq.com/herodetail/a.shtml#story"))

		item, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, "https://pvp.qq.com/herodetail/a.shtml", item.URL)
	})
}

func TestFrontier_Pop(t *testing.T) {
	t.Parallel()

	t.Run("returns items in insertion order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Push(heroscrape.WorkItem{URL: "https://pvp.qq.com/herodetail/c.shtml", HintName: "C"})
		f.Push(heroscrape.WorkItem{URL: "https://pvp.qq.com/herodetail/a.shtml", HintName: "A"})
		f.Push(heroscrape.WorkItem{URL: "https://pvp.qq.com/herodetail/b.shtml", HintName: "B"})

		var hints []string
		for _, item := range crawl.Drain(f) {
			hints = append(hints, item.HintName)
		}

		assert.Equal(t, []string{"C", "A", "B"}, hints)
		assert.Equal(t, 0, f.Len())
	})

	t.Run("empty frontier", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.NewFrontier(10, 0.01).Pop()

		assert.False(t, ok)
	})

	t.Run("popped URLs stay seen", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Push(detail("https://pvp.qq.com/herodetail/a.shtml"))
		f.Pop()

		assert.False(t, f.Push(detail("https://pvp.qq.com/herodetail/a.shtml")))
	})
}

func TestFrontier_ConcurrentPush(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.001)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				f.Push(detail(fmt.Sprintf("https://pvp.qq.com/herodetail/%d.shtml", i)))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, f.Len())
}

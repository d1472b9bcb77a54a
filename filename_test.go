package heroscrape_test

import (
	"testing"
	"time"

	"github.com/fwojciec/heroscrape"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "孙悟空", heroscrape.SanitizeFilename("孙/悟:空"))
	assert.Equal(t, "abc", heroscrape.SanitizeFilename("a/b:c"))
	assert.Equal(t, "ab", heroscrape.SanitizeFilename(`a<>:"/\|?*b`))
}

func TestURLBasename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "strips shtml", url: "https://pvp.qq.com/web201605/herodetail/chicha.shtml", want: "chicha"},
		{name: "strips html", url: "https://example.com/heroes/list.html", want: "list"},
		{name: "ignores query", url: "https://example.com/heroes/a.shtml?x=1", want: "a"},
		{name: "root becomes index", url: "https://example.com/", want: "index"},
		{name: "no path becomes index", url: "https://example.com", want: "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, heroscrape.URLBasename(tt.url))
		})
	}
}

func TestArtifactFilename(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 8, 12, 34, 56, 0, time.UTC)

	t.Run("uses sanitized name for detail pages", func(t *testing.T) {
		t.Parallel()

		got := heroscrape.ArtifactFilename("孙/悟:空", "https://pvp.qq.com/herodetail/sunwukong.shtml", heroscrape.KindDetail, ts)

		assert.Equal(t, "孙悟空_detail_20250108_123456.txt", got)
	})

	t.Run("falls back to URL basename without a name", func(t *testing.T) {
		t.Parallel()

		got := heroscrape.ArtifactFilename("", "https://pvp.qq.com/herodetail/chicha.shtml", heroscrape.KindDetail, ts)

		assert.Equal(t, "chicha_detail_20250108_123456.txt", got)
	})

	t.Run("falls back when name sanitizes to nothing", func(t *testing.T) {
		t.Parallel()

		got := heroscrape.ArtifactFilename("/:", "https://pvp.qq.com/herodetail/chicha.shtml", heroscrape.KindDetail, ts)

		assert.Equal(t, "chicha_detail_20250108_123456.txt", got)
	})

	t.Run("uses URL basename for listing pages", func(t *testing.T) {
		t.Parallel()

		got := heroscrape.ArtifactFilename("英雄", "https://pvp.qq.com/web201605/herolist.shtml", heroscrape.KindList, ts)

		assert.Equal(t, "herolist_list_20250108_123456.txt", got)
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/heroscrape/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads every field", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
seeds:
  - https://pvp.qq.com/web201605/herodetail/chicha.shtml
list_urls:
  - https://pvp.qq.com/web201605/herolist.shtml
delay: 5s
timeout: 1m
pace_failures: false
retry: true
user_agent: test-agent
output_dir: out
detail_marker: herodetail
narrative: readability
`)

		f, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://pvp.qq.com/web201605/herodetail/chicha.shtml"}, f.Seeds)
		assert.Equal(t, []string{"https://pvp.qq.com/web201605/herolist.shtml"}, f.ListURLs)
		require.NotNil(t, f.Delay)
		assert.Equal(t, 5*time.Second, *f.Delay)
		require.NotNil(t, f.Timeout)
		assert.Equal(t, time.Minute, *f.Timeout)
		require.NotNil(t, f.PaceFailures)
		assert.False(t, *f.PaceFailures)
		require.NotNil(t, f.Retry)
		assert.True(t, *f.Retry)
		assert.Equal(t, "test-agent", f.UserAgent)
		assert.Equal(t, "out", f.OutputDir)
		assert.Equal(t, "herodetail", f.DetailMarker)
		assert.Equal(t, config.NarrativeReadability, f.Narrative)
	})

	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorIs(t, err, config.ErrNotFound)
	})

	t.Run("malformed YAML is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "seeds: [unclosed"))

		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("bad duration is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "delay: soon\n"))

		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("negative delay is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "delay: -1s\n"))

		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("non-http seed is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "seeds: [\"ftp://pvp.qq.com/a\"]\n"))

		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("unknown narrative source is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "narrative: llm\n"))

		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("empty file is valid", func(t *testing.T) {
		t.Parallel()

		f, err := config.Load(writeConfig(t, ""))

		require.NoError(t, err)
		assert.Nil(t, f.Delay)
		assert.Empty(t, f.Seeds)
	})
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("returns an explicit path that exists", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "")
		assert.Equal(t, path, config.Find(path))
	})

	t.Run("returns empty for an explicit path that does not exist", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, config.Find(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

func TestSettings_Apply(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		s := config.Defaults()

		assert.Equal(t, 2*time.Second, s.Delay)
		assert.Equal(t, 30*time.Second, s.Timeout)
		assert.True(t, s.PaceFailures)
		assert.False(t, s.Retry)
		assert.Equal(t, "scraped_content", s.OutputDir)
		assert.Equal(t, config.NarrativeTrafilatura, s.Narrative)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()

		f, err := config.Load(writeConfig(t, "delay: 0s\npace_failures: false\noutput_dir: heroes\n"))
		require.NoError(t, err)

		s := config.Defaults().Apply(f)

		assert.Equal(t, time.Duration(0), s.Delay)
		assert.False(t, s.PaceFailures)
		assert.Equal(t, "heroes", s.OutputDir)
		assert.Equal(t, 30*time.Second, s.Timeout)
	})

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, config.Defaults(), config.Defaults().Apply(nil))
	})
}

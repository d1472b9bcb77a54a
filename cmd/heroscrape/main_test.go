package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/heroscrape/cmd/heroscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPage = `<html><head><title>王者荣耀赤茶-英雄详情</title></head>
<body>
<h2>赤茶</h2>
<h3>烈焰之子</h3>
<div>技能介绍</div>
<div>X冷却值：40/36/32消耗：80</div>
<div>这是一段足够长的技能描述文本用于测试描述的提取效果</div>
</body></html>`

const listPage = `<html><head><title>英雄列表</title></head>
<body><h1>英雄资料</h1>
<a href="herodetail/chicha.shtml">赤茶</a>
<a href="herodetail/missing.shtml">无名</a>
</body></html>`

// newSite serves one detail page and one listing page.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/web201605/herodetail/chicha.shtml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(detailPage))
	})
	mux.HandleFunc("/web201605/herolist.shtml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listPage))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type cliEnv struct {
	main   *main.Main
	out    string
	db     string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "runs.db")
	return &cliEnv{
		main:   m,
		out:    filepath.Join(dir, "out"),
		db:     m.DBPath,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

func (e *cliEnv) run(args ...string) error {
	e.stdout.Reset()
	e.stderr.Reset()
	return e.main.Run(context.Background(), args, e.stdout, e.stderr)
}

func glob(t *testing.T, dir, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	require.NoError(t, err)
	return matches
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("saves detail and listing artifacts and records the run", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		env := newCLIEnv(t)

		err := env.run("crawl",
			srv.URL+"/web201605/herodetail/chicha.shtml",
			srv.URL+"/web201605/herolist.shtml",
			"--out", env.out, "--delay", "1ms", "--narrative", "none")

		require.NoError(t, err, env.stderr.String())
		output := env.stdout.String()
		assert.Contains(t, output, "[1/2] saved")
		assert.Contains(t, output, "(赤茶)")
		assert.Contains(t, output, "saved 2 of 2")

		details := glob(t, env.out, "赤茶_detail_*.txt")
		require.Len(t, details, 1)
		body, err := os.ReadFile(details[0])
		require.NoError(t, err)
		assert.Contains(t, string(body), "来源URL: "+srv.URL+"/web201605/herodetail/chicha.shtml")
		assert.Contains(t, string(body), "英雄名称：赤茶")
		assert.Contains(t, string(body), "技能 1：X")

		listings := glob(t, env.out, "herolist_list_*.txt")
		require.Len(t, listings, 1)
		body, err = os.ReadFile(listings[0])
		require.NoError(t, err)
		assert.Contains(t, string(body), "【H1 标题】")
		assert.Contains(t, string(body), "  赤茶 -> "+srv.URL+"/web201605/herodetail/chicha.shtml")

		require.NoError(t, env.run("history"))
		assert.Contains(t, env.stdout.String(), "saved 2/2")
	})

	t.Run("all mode harvests the listing page and isolates failures", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		env := newCLIEnv(t)

		err := env.run("crawl", "--all",
			"--list-url", srv.URL+"/web201605/herolist.shtml",
			"--out", env.out, "--delay", "1ms", "--narrative", "none")

		require.NoError(t, err, env.stderr.String())
		output := env.stdout.String()
		assert.Contains(t, output, "Crawling 2 pages")
		assert.Contains(t, output, "[2/2] fetch_failed")
		assert.Contains(t, output, "saved 1 of 2, 1 failed")
		assert.Len(t, glob(t, env.out, "赤茶_detail_*.txt"), 1)

		require.NoError(t, env.run("history"))
		fields := strings.Fields(env.stdout.String())
		require.NotEmpty(t, fields)
		runID := fields[0]

		require.NoError(t, env.run("history", "--run", runID))
		lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "saved")
		assert.Contains(t, lines[1], "fetch_failed")
	})

	t.Run("config file supplies defaults", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		env := newCLIEnv(t)
		cfg := filepath.Join(t.TempDir(), "heroscrape.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte(
			"seeds:\n  - "+srv.URL+"/web201605/herodetail/chicha.shtml\n"+
				"output_dir: "+env.out+"\n"+
				"delay: 1ms\n"+
				"narrative: none\n"), 0o644))

		err := env.run("--config", cfg, "crawl", "--no-ledger")

		require.NoError(t, err, env.stderr.String())
		assert.Contains(t, env.stdout.String(), "saved 1 of 1")
		assert.Len(t, glob(t, env.out, "赤茶_detail_*.txt"), 1)
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		env := newCLIEnv(t)
		err := env.run("--config", filepath.Join(t.TempDir(), "missing.yaml"), "crawl")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file not found")
	})

	t.Run("unknown narrative source is an error", func(t *testing.T) {
		t.Parallel()

		env := newCLIEnv(t)
		err := env.run("crawl", "--narrative", "llm")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown narrative source")
	})
}

func TestMain_Run_Links(t *testing.T) {
	t.Parallel()

	srv := newSite(t)
	env := newCLIEnv(t)

	err := env.run("links", srv.URL+"/web201605/herolist.shtml")

	require.NoError(t, err, env.stderr.String())
	output := env.stdout.String()
	assert.Contains(t, output, "赤茶 -> "+srv.URL+"/web201605/herodetail/chicha.shtml")
	assert.Contains(t, output, "无名 -> "+srv.URL+"/web201605/herodetail/missing.shtml")
	assert.Contains(t, output, "2 links")
}

func TestMain_Run_Catalog(t *testing.T) {
	t.Parallel()

	srv := newSite(t)
	env := newCLIEnv(t)
	require.NoError(t, env.run("crawl", srv.URL+"/web201605/herodetail/chicha.shtml",
		"--out", env.out, "--narrative", "none", "--no-ledger"))

	out := filepath.Join(t.TempDir(), "catalog", "skill1.json")
	err := env.run("catalog", "--in", env.out, "--out", out, "--skill", "1")

	require.NoError(t, err, env.stderr.String())
	assert.Contains(t, env.stdout.String(), "Catalogued 1 heroes")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "赤茶"`)
	assert.Contains(t, string(data), `"title": "烈焰之子"`)
	assert.Contains(t, string(data), `"skill1_name": "X"`)
	assert.Contains(t, string(data), `"skill1_cooldown": "40"`)
	assert.Contains(t, string(data), `"skill1_cost": "80"`)
}

func TestMain_Run_History_Empty(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)

	require.NoError(t, env.run("history"))
	assert.Contains(t, env.stdout.String(), "No runs recorded")
}

package catalog

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/heroscrape"
	"golang.org/x/sync/errgroup"
)

// DetailPattern matches detail artifact filenames.
const DetailPattern = "*_" + string(heroscrape.KindDetail) + "_*.txt"

// DefaultConcurrency bounds the number of files read at once.
const DefaultConcurrency = 8

// Builder reads detail artifacts into catalogue entries.
type Builder struct {
	Skill       int
	Concurrency int
	Logger      *slog.Logger
}

// NewBuilder creates a Builder for DefaultSkill.
func NewBuilder() *Builder {
	return &Builder{Skill: DefaultSkill, Concurrency: DefaultConcurrency}
}

type parsed struct {
	file  string
	entry Entry
	ok    bool
}

// Build parses every detail artifact in dir. Artifacts without a hero name
// are skipped. Entries are ordered by filename. Returns ENOTFOUND if dir
// holds no detail artifacts.
func (b *Builder) Build(ctx context.Context, dir string) ([]Entry, error) {
	files, err := filepath.Glob(filepath.Join(dir, DetailPattern))
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "invalid catalogue directory %q: %v", dir, err)
	}
	if len(files) == 0 {
		return nil, heroscrape.Errorf(heroscrape.ENOTFOUND, "no detail artifacts in %s", dir)
	}

	results := make([]parsed, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Concurrency, 1))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			entry := Parse(string(data), b.Skill)
			results[i] = parsed{file: filepath.Base(file), entry: entry, ok: entry.Name != ""}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(x, y parsed) int { return cmp.Compare(x.file, y.file) })

	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		if !r.ok {
			b.logger().Info("artifact skipped", "file", r.file)
			continue
		}
		entries = append(entries, r.entry)
	}
	return entries, nil
}

// Write encodes entries as an indented JSON array.
func Write(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// DefaultOutputName returns the catalogue filename for a skill index.
func DefaultOutputName(skill int) string {
	return fmt.Sprintf("heroes_skill%d_data.json", skill)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}

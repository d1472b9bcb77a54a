// Package fs persists text artifacts to a local directory.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/heroscrape"
)

// HeaderTimeLayout is the fetch timestamp written in the artifact header.
const HeaderTimeLayout = "2006-01-02 15:04:05"

// FormatArtifact prefixes the body with the provenance header.
func FormatArtifact(a *heroscrape.Artifact) string {
	var b strings.Builder
	b.WriteString("爬取时间: ")
	b.WriteString(a.FetchedAt.Format(HeaderTimeLayout))
	b.WriteString("\n")
	if a.SourceURL != "" {
		b.WriteString("来源URL: ")
		b.WriteString(a.SourceURL)
		b.WriteString("\n")
	}
	b.WriteString(heroscrape.HeavyDivider)
	b.WriteString("\n\n")
	b.WriteString(a.Body)
	return b.String()
}

// Ensure Writer implements heroscrape.ArtifactWriter at compile time.
var _ heroscrape.ArtifactWriter = (*Writer)(nil)

// Writer writes artifacts as UTF-8 text files into a directory.
// Existing files are never replaced.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.baseDir
}

// maxSuffix bounds the numbered alternatives tried for a taken filename.
const maxSuffix = 99

// WriteArtifact writes the artifact and returns its path. The file is
// written under a temporary name and linked into place, so readers never
// see a partial artifact. Existing files are never replaced: a taken
// filename gets a numeric suffix ("name_2.txt", "name_3.txt", ...), and
// ECONFLICT is returned only when every alternative is taken.
func (w *Writer) WriteArtifact(ctx context.Context, a *heroscrape.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filepath.Base(a.Filename) != a.Filename {
		return "", heroscrape.Errorf(heroscrape.EINVALID, "artifact filename %q must not contain a directory", a.Filename)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", heroscrape.Errorf(heroscrape.EPERSIST, "creating output directory: %v", err)
	}

	data := []byte(FormatArtifact(a))
	for n := 1; n <= maxSuffix; n++ {
		fullPath := filepath.Join(w.baseDir, suffixed(a.Filename, n))
		err := writeNew(fullPath, data)
		if err == nil {
			return fullPath, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", heroscrape.Errorf(heroscrape.EPERSIST, "writing %s: %v", a.Filename, err)
		}
	}
	return "", heroscrape.Errorf(heroscrape.ECONFLICT, "artifact %s already exists", a.Filename)
}

// suffixed returns name for n == 1, otherwise name with "_<n>" inserted
// before the extension.
func suffixed(name string, n int) string {
	if n == 1 {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(n) + ext
}

// writeNew writes data to a temporary file beside path and hard-links it
// to path, failing with os.ErrExist if path is already present.
func writeNew(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Link(tmp.Name(), path)
}

package heroscrape

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the fetch timestamp embedded in artifact filenames.
const TimestampLayout = "20060102_150405"

var illegalFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// pageSuffixes are stripped from URL basenames.
var pageSuffixes = []string{".shtml", ".html"}

// SanitizeFilename removes characters that are illegal in filenames.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(illegalFilenameRe.ReplaceAllString(name, ""))
}

// URLBasename derives a filename base from the last path segment of a URL,
// with known page suffixes stripped. Root or empty paths yield "index".
func URLBasename(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	for _, suffix := range pageSuffixes {
		base = strings.ReplaceAll(base, suffix, "")
	}
	base = SanitizeFilename(base)
	if base == "" || base == "." || base == "/" {
		return "index"
	}
	return base
}

// ArtifactFilename builds "<name>_<kind>_<YYYYMMDD_HHMMSS>.txt". The name
// part is the sanitized hero name for detail pages, falling back to the URL
// basename when there is no usable name.
func ArtifactFilename(name, rawURL string, kind PageKind, fetchedAt time.Time) string {
	base := ""
	if kind == KindDetail {
		base = SanitizeFilename(name)
	}
	if base == "" {
		base = URLBasename(rawURL)
	}
	return base + "_" + string(kind) + "_" + fetchedAt.Format(TimestampLayout) + ".txt"
}

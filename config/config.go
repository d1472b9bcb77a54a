// Package config loads optional crawl settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name looked up by Find.
const DefaultFile = ".heroscrape.yaml"

// Narrative fallback names.
const (
	NarrativeTrafilatura = "trafilatura"
	NarrativeReadability = "readability"
	NarrativeNone        = "none"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")

	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid configuration")
)

// File is the content of a configuration file. Unset fields keep the
// command-line or built-in defaults.
type File struct {
	Seeds        []string       `yaml:"seeds"`
	ListURLs     []string       `yaml:"list_urls"`
	Delay        *time.Duration `yaml:"delay"`
	Timeout      *time.Duration `yaml:"timeout"`
	PaceFailures *bool          `yaml:"pace_failures"`
	Retry        *bool          `yaml:"retry"`
	UserAgent    string         `yaml:"user_agent"`
	OutputDir    string         `yaml:"output_dir"`
	DetailMarker string         `yaml:"detail_marker"`
	Narrative    string         `yaml:"narrative"`
}

// Load reads and validates the file at path. A missing file returns
// ErrNotFound.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks durations, URLs and the narrative name.
func (f *File) Validate() error {
	if f.Delay != nil && *f.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrInvalid)
	}
	if f.Timeout != nil && *f.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalid)
	}
	for _, list := range [][]string{f.Seeds, f.ListURLs} {
		for _, raw := range list {
			u, err := url.Parse(raw)
			if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalid, raw)
			}
		}
	}
	switch f.Narrative {
	case "", NarrativeTrafilatura, NarrativeReadability, NarrativeNone:
	default:
		return fmt.Errorf("%w: unknown narrative source %q", ErrInvalid, f.Narrative)
	}
	return nil
}

// Find returns the configuration file to load: path if given and present,
// otherwise DefaultFile in the working directory, then in the home
// directory. Returns "" when none exists.
func Find(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

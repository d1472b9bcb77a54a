package config

import "time"

// Built-in defaults.
const (
	DefaultDelay     = 2 * time.Second
	DefaultTimeout   = 30 * time.Second
	DefaultOutputDir = "scraped_content"
)

// Settings are the effective crawl settings.
type Settings struct {
	Seeds        []string
	ListURLs     []string
	Delay        time.Duration
	Timeout      time.Duration
	PaceFailures bool
	Retry        bool
	UserAgent    string
	OutputDir    string
	DetailMarker string
	Narrative    string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Delay:        DefaultDelay,
		Timeout:      DefaultTimeout,
		PaceFailures: true,
		OutputDir:    DefaultOutputDir,
		Narrative:    NarrativeTrafilatura,
	}
}

// Apply overlays the fields set in f. A nil file changes nothing.
func (s Settings) Apply(f *File) Settings {
	if f == nil {
		return s
	}
	if len(f.Seeds) > 0 {
		s.Seeds = f.Seeds
	}
	if len(f.ListURLs) > 0 {
		s.ListURLs = f.ListURLs
	}
	if f.Delay != nil {
		s.Delay = *f.Delay
	}
	if f.Timeout != nil {
		s.Timeout = *f.Timeout
	}
	if f.PaceFailures != nil {
		s.PaceFailures = *f.PaceFailures
	}
	if f.Retry != nil {
		s.Retry = *f.Retry
	}
	if f.UserAgent != "" {
		s.UserAgent = f.UserAgent
	}
	if f.OutputDir != "" {
		s.OutputDir = f.OutputDir
	}
	if f.DetailMarker != "" {
		s.DetailMarker = f.DetailMarker
	}
	if f.Narrative != "" {
		s.Narrative = f.Narrative
	}
	return s
}

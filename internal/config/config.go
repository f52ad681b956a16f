// Package config holds the fixed constant set for a feed generation run.
// Every value the pipeline depends on — source URL, calendar metadata, venue,
// UID domain, default duration, traversal depth — is loaded here once and
// injected, never read from ambient globals.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CalendarConfig describes the feed-level metadata emitted in the header.
type CalendarConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Timezone is the IANA zone the page's civil times are interpreted in,
	// and the value of the X-WR-TIMEZONE header line.
	Timezone string `yaml:"timezone"`
	ProdID   string `yaml:"prodid"`
}

// HTTPConfig controls the fetch collaborator.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	Retries        int `yaml:"retries"`
}

// Config is the top-level run configuration.
type Config struct {
	// SourceURL is the events listing page to scrape.
	SourceURL string `yaml:"source_url"`
	// BaseURL resolves relative event links to absolute URLs.
	BaseURL string `yaml:"base_url"`
	// Output is the path the generated feed is written to.
	Output string `yaml:"output"`

	Calendar CalendarConfig `yaml:"calendar"`

	// Venue is the location attached to every event.
	Venue string `yaml:"venue"`
	// UIDDomain is the domain tag suffixed to derived UIDs.
	UIDDomain string `yaml:"uid_domain"`
	// DefaultDurationHours is the assumed length of a timed event.
	DefaultDurationHours int `yaml:"default_duration_hours"`
	// ParentDepth bounds the upward walk from an anchor to its event card.
	ParentDepth int `yaml:"parent_depth"`

	HTTP HTTPConfig `yaml:"http"`
}

// Default returns the built-in configuration matching the public Wembley
// Stadium events page.
func Default() *Config {
	return &Config{
		SourceURL: "https://www.wembleystadium.com/events",
		BaseURL:   "https://www.wembleystadium.com",
		Output:    "docs/calendar.ics",
		Calendar: CalendarConfig{
			Name:        "Wembley Stadium Events",
			Description: "Wembley Stadium events (updated daily).",
			Timezone:    "Europe/London",
			ProdID:      "-//wembleycal//Wembley Stadium Events//EN",
		},
		Venue:                "Wembley Stadium, London",
		UIDDomain:            "wembleycal",
		DefaultDurationHours: 3,
		ParentDepth:          8,
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			Retries:        3,
		},
	}
}

// Load reads configuration from a YAML file. An empty path or a missing
// file yields the defaults; fields left unset in the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return errors.New("source_url must not be empty")
	}
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.Calendar.Timezone == "" {
		return errors.New("calendar.timezone must not be empty")
	}
	if c.DefaultDurationHours <= 0 {
		return fmt.Errorf("default_duration_hours must be positive, got %d", c.DefaultDurationHours)
	}
	if c.ParentDepth <= 0 {
		return fmt.Errorf("parent_depth must be positive, got %d", c.ParentDepth)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	return nil
}

// DefaultDuration returns the configured timed-event length.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationHours) * time.Hour
}

// Timeout returns the configured HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

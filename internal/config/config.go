// Package config holds the collector's settings: per-entity source layout,
// request pacing, and retry policy. Settings load from an optional YAML file
// over built-in defaults that match the public directory layout.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Retry is the fetcher's backoff policy.
type Retry struct {
	MaxAttempts    int `yaml:"max_attempts"`
	InitialDelayMs int `yaml:"initial_delay_ms"`
	MaxDelayMs     int `yaml:"max_delay_ms"`
}

// Source describes one entity type's index and detail pages.
type Source struct {
	// BaseURL resolves relative detail hrefs.
	BaseURL string `yaml:"base_url"`
	// PageFormat is a fmt format string with one integer verb producing an
	// index page URL, e.g. "https://.../camps/?page=%d".
	PageFormat string `yaml:"page_format"`
	StartPage  int    `yaml:"start_page"`
	EndPage    int    `yaml:"end_page"`
	// PathPrefix anchors detail hrefs, e.g. "/camps".
	PathPrefix string `yaml:"path_prefix"`
	// Output is the default JSON output path.
	Output string `yaml:"output"`
}

// Config is the full collector configuration.
type Config struct {
	UserAgent         string `yaml:"user_agent"`
	RequestDelayMs    int    `yaml:"request_delay_ms"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	Retry             Retry  `yaml:"retry"`
	Camps             Source `yaml:"camps"`
	Art               Source `yaml:"art"`
	Events            Source `yaml:"events"`
}

// Default returns the configuration matching the public directory layout.
func Default() *Config {
	return &Config{
		UserAgent:         "brc-directory/1.0 (github.com/playamaps/brc-directory)",
		RequestDelayMs:    1000,
		RequestTimeoutSec: 30,
		Retry: Retry{
			MaxAttempts:    3,
			InitialDelayMs: 500,
			MaxDelayMs:     30000,
		},
		Camps: Source{
			BaseURL:    "https://directory.burningman.org",
			PageFormat: "https://directory.burningman.org/camps/?page=%d",
			StartPage:  1,
			EndPage:    30,
			PathPrefix: "/camps",
			Output:     "camps.json",
		},
		Art: Source{
			BaseURL:    "https://directory.burningman.org",
			PageFormat: "https://directory.burningman.org/artwork/?page=%d",
			StartPage:  1,
			EndPage:    8,
			PathPrefix: "/artwork",
			Output:     "arts.json",
		},
		Events: Source{
			BaseURL:    "https://playaevents.burningman.org",
			PageFormat: "https://playaevents.burningman.org/2025/playa_events/%02d",
			StartPage:  1,
			EndPage:    8,
			PathPrefix: "/2025/playa_event",
			Output:     "events.json",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
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

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.RequestDelayMs < 0 {
		return fmt.Errorf("request_delay_ms must not be negative")
	}
	if c.RequestTimeoutSec <= 0 {
		return fmt.Errorf("request_timeout_sec must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	for name, src := range map[string]Source{"camps": c.Camps, "art": c.Art, "events": c.Events} {
		if err := src.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (s Source) validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if !strings.Contains(s.PageFormat, "%") {
		return fmt.Errorf("page_format must contain an integer verb")
	}
	if s.StartPage < 1 || s.EndPage < s.StartPage {
		return fmt.Errorf("invalid page range %d..%d", s.StartPage, s.EndPage)
	}
	if !strings.HasPrefix(s.PathPrefix, "/") {
		return fmt.Errorf("path_prefix must start with a slash")
	}
	if s.Output == "" {
		return fmt.Errorf("output is required")
	}
	return nil
}

// IndexURL renders the index page URL for one page number.
func (s Source) IndexURL(page int) string {
	return fmt.Sprintf(s.PageFormat, page)
}

// RequestDelay returns the inter-request delay as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

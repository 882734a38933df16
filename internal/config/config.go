// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valpere/LexScrapexter/internal/browser"
	"github.com/valpere/LexScrapexter/internal/scraper"
)

// LoadFromFile loads and validates a job configuration from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("config filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses, defaults, and validates a configuration from raw
// YAML. Environment variable references of the form ${VAR} or
// ${VAR:-default} are expanded first.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvironmentVariables(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnvironmentVariables substitutes ${VAR} and ${VAR:-default}.
func expandEnvironmentVariables(input string) string {
	return os.Expand(input, func(key string) string {
		name, fallback, hasFallback := strings.Cut(key, ":-")
		if value, ok := os.LookupEnv(name); ok && value != "" {
			return value
		}
		if hasFallback {
			return fallback
		}
		return ""
	})
}

func applyDefaults(config *Config) {
	if config.Name == "" {
		config.Name = "lexscrapexter-run"
	}
	if config.Limits.MaxPages <= 0 {
		config.Limits.MaxPages = 100
	}
	if config.Limits.Concurrency <= 0 {
		config.Limits.Concurrency = 2
	}
	if config.Limits.PageRate <= 0 {
		config.Limits.PageRate = 0.5
	}
	if config.Enrichment.Concurrency <= 0 {
		config.Enrichment.Concurrency = 5
	}
	if config.Enrichment.BatchPause <= 0 {
		config.Enrichment.BatchPause = Duration(scraper.DefaultEnricherConfig().BatchPause)
	}
	if config.Enrichment.Timeout <= 0 {
		config.Enrichment.Timeout = Duration(scraper.DefaultEnricherConfig().Timeout)
	}
	if config.Enrichment.RateLimit <= 0 {
		config.Enrichment.RateLimit = scraper.DefaultEnricherConfig().RateLimit
	}
	defaults := browser.DefaultConfig()
	if config.Browser == nil {
		// No browser section at all: take the full default profile,
		// headless included. An explicit section keeps its own headless
		// choice.
		config.Browser = &BrowserConfig{Headless: defaults.Headless}
	}
	if config.Browser.NavTimeout <= 0 {
		config.Browser.NavTimeout = Duration(defaults.NavTimeout)
	}
	if config.Browser.SettleDelay <= 0 {
		config.Browser.SettleDelay = Duration(defaults.SettleDelay)
	}
	if config.Browser.ViewportWidth <= 0 {
		config.Browser.ViewportWidth = defaults.ViewportWidth
	}
	if config.Browser.ViewportHeight <= 0 {
		config.Browser.ViewportHeight = defaults.ViewportHeight
	}
	if config.Output.Format == "" {
		config.Output.Format = "jsonl"
	}
	if config.Output.File == "" {
		config.Output.File = "attorneys." + datasetExtension(config.Output.Format)
	}
	if config.Output.ArtifactDir == "" {
		config.Output.ArtifactDir = "artifacts"
	}
}

func datasetExtension(format string) string {
	if format == "sqlite" {
		return "db"
	}
	return "jsonl"
}

// BrowserProfile converts the YAML browser section into the launch profile
// the browser package consumes.
func (c *Config) BrowserProfile() *browser.Config {
	b := c.Browser
	return &browser.Config{
		Headless:       b.Headless,
		UserAgent:      b.UserAgent,
		ProxyServer:    b.ProxyServer,
		NavTimeout:     b.NavTimeout.Std(),
		SettleDelay:    b.SettleDelay.Std(),
		ViewportWidth:  b.ViewportWidth,
		ViewportHeight: b.ViewportHeight,
		DisableImages:  b.DisableImages,
	}
}

// StartURL returns the configured URL, or synthesizes one from the
// practice-area/state/city triple:
//
//	https://www.avvo.com/<practice>-lawyer/<state>[/<city>].html
//
// Components are slugified (lowercased, spaces to hyphens).
func (c *Config) StartURL() string {
	if c.Target.URL != "" {
		return c.Target.URL
	}

	path := slugify(c.Target.PracticeArea) + "-lawyer/" + slugify(c.Target.State)
	if c.Target.City != "" {
		path += "/" + slugify(c.Target.City)
	}
	return scraper.BaseOrigin + "/" + path + ".html"
}

// slugify lowercases and hyphenates a human-entered component so it can be
// embedded in a listing URL path.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

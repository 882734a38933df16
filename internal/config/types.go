// internal/config/types.go

// Package config provides the job configuration for a scraping run: the
// target (direct URL or practice-area/state pair), budgets, enrichment
// settings, browser profile, outputs, and metrics.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can say "2s" or "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root job configuration.
type Config struct {
	// Name identifies this job in logs and the status endpoint.
	Name string `yaml:"name" json:"name"`

	// Target selects where the run starts.
	Target TargetConfig `yaml:"target" json:"target"`

	// Limits bound the run.
	Limits LimitsConfig `yaml:"limits" json:"limits"`

	// Enrichment controls the detail-page pass.
	Enrichment EnrichmentConfig `yaml:"enrichment" json:"enrichment"`

	// Browser is the launch profile handed to the rendering collaborator.
	Browser *BrowserConfig `yaml:"browser,omitempty" json:"browser,omitempty"`

	// Output configures the record sink and artifact store.
	Output OutputConfig `yaml:"output" json:"output"`

	// Metrics optionally exposes Prometheus metrics and run status.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// BrowserConfig is the YAML-facing browser launch profile.
type BrowserConfig struct {
	Headless       bool     `yaml:"headless" json:"headless"`
	UserAgent      string   `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	ProxyServer    string   `yaml:"proxy_server,omitempty" json:"proxy_server,omitempty"`
	NavTimeout     Duration `yaml:"nav_timeout,omitempty" json:"nav_timeout,omitempty"`
	SettleDelay    Duration `yaml:"settle_delay,omitempty" json:"settle_delay,omitempty"`
	ViewportWidth  int      `yaml:"viewport_width,omitempty" json:"viewport_width,omitempty"`
	ViewportHeight int      `yaml:"viewport_height,omitempty" json:"viewport_height,omitempty"`
	DisableImages  bool     `yaml:"disable_images" json:"disable_images"`
}

// TargetConfig defines the starting point. Either URL, or PracticeArea and
// State for starting-URL synthesis.
type TargetConfig struct {
	URL          string `yaml:"url,omitempty" json:"url,omitempty"`
	PracticeArea string `yaml:"practice_area,omitempty" json:"practice_area,omitempty"`
	State        string `yaml:"state,omitempty" json:"state,omitempty"`
	City         string `yaml:"city,omitempty" json:"city,omitempty"`
}

// LimitsConfig bounds the run.
type LimitsConfig struct {
	// MaxRecords caps emitted records; 0 means unbounded.
	MaxRecords int `yaml:"max_records" json:"max_records"`

	// MaxPages caps listing pages processed.
	MaxPages int `yaml:"max_pages" json:"max_pages"`

	// Concurrency bounds parallel page handlers.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// PageRate is listing-page requests per second.
	PageRate float64 `yaml:"page_rate" json:"page_rate"`
}

// EnrichmentConfig controls the detail-page pass.
type EnrichmentConfig struct {
	Enabled     bool     `yaml:"enabled" json:"enabled"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
	BatchPause  Duration `yaml:"batch_pause" json:"batch_pause"`
	Timeout     Duration `yaml:"timeout" json:"timeout"`
	RateLimit   float64  `yaml:"rate_limit" json:"rate_limit"`
}

// OutputConfig configures sinks and the artifact store.
type OutputConfig struct {
	// Format is "jsonl" or "sqlite".
	Format string `yaml:"format" json:"format"`

	// File is the dataset destination (path of the JSONL file or the
	// SQLite database).
	File string `yaml:"file" json:"file"`

	// ArtifactDir is where diagnostic snapshots and the run summary go.
	ArtifactDir string `yaml:"artifact_dir" json:"artifact_dir"`
}

// MetricsConfig configures the optional metrics/status endpoint.
type MetricsConfig struct {
	ListenAddress string `yaml:"listen_address,omitempty" json:"listen_address,omitempty"`
}

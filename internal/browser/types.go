// internal/browser/types.go

// Package browser wraps chromedp behind the page-handle interface the
// scraping core consumes.
package browser

import "time"

// Config defines the browser launch profile.
type Config struct {
	Headless       bool          `yaml:"headless" json:"headless"`
	UserAgent      string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	ProxyServer    string        `yaml:"proxy_server,omitempty" json:"proxy_server,omitempty"`
	NavTimeout     time.Duration `yaml:"nav_timeout" json:"nav_timeout"`
	SettleDelay    time.Duration `yaml:"settle_delay,omitempty" json:"settle_delay,omitempty"`
	ViewportWidth  int           `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height" json:"viewport_height"`
	DisableImages  bool          `yaml:"disable_images" json:"disable_images"`
}

// DefaultConfig returns the launch profile used when the job config leaves
// the browser section out.
func DefaultConfig() *Config {
	return &Config{
		Headless:       true,
		NavTimeout:     45 * time.Second,
		SettleDelay:    2 * time.Second,
		ViewportWidth:  1366,
		ViewportHeight: 900,
		DisableImages:  true,
	}
}

// Stats tracks navigation outcomes for the run summary log.
type Stats struct {
	PagesLoaded int           `json:"pages_loaded"`
	Errors      int           `json:"errors"`
	AvgLoadTime time.Duration `json:"avg_load_time"`
}

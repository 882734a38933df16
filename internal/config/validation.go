// internal/config/validation.go

package config

import (
	"fmt"
	"net/url"
)

// maxRecordsCeiling is the largest record budget a job may request.
const maxRecordsCeiling = 10000

// Validate checks the configuration before any network activity so that
// unusable jobs fail immediately with a clear reason.
func (c *Config) Validate() error {
	if err := c.Target.validate(); err != nil {
		return err
	}

	if c.Limits.MaxRecords < 0 || c.Limits.MaxRecords > maxRecordsCeiling {
		return fmt.Errorf("limits.max_records must be between 0 and %d, got %d",
			maxRecordsCeiling, c.Limits.MaxRecords)
	}
	if c.Limits.MaxPages < 0 {
		return fmt.Errorf("limits.max_pages cannot be negative, got %d", c.Limits.MaxPages)
	}

	switch c.Output.Format {
	case "jsonl", "sqlite":
	default:
		return fmt.Errorf("output.format must be jsonl or sqlite, got %q", c.Output.Format)
	}

	return nil
}

func (t *TargetConfig) validate() error {
	if t.URL == "" {
		if t.PracticeArea == "" || t.State == "" {
			return fmt.Errorf("target requires either url or both practice_area and state")
		}
		return nil
	}

	parsed, err := url.Parse(t.URL)
	if err != nil {
		return fmt.Errorf("target.url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target.url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("target.url is missing a host")
	}

	return nil
}

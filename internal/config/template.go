// internal/config/template.go

package config

import "time"

// GenerateTemplate returns a starter configuration for a typical
// practice-area run, ready to be marshaled to YAML.
func GenerateTemplate() *Config {
	config := &Config{
		Name: "personal-injury-chicago",
		Target: TargetConfig{
			PracticeArea: "personal injury",
			State:        "illinois",
			City:         "chicago",
		},
		Limits: LimitsConfig{
			MaxRecords: 200,
			MaxPages:   20,
		},
		Enrichment: EnrichmentConfig{
			Enabled:    true,
			BatchPause: Duration(2 * time.Second),
			Timeout:    Duration(15 * time.Second),
		},
		Output: OutputConfig{
			Format: "jsonl",
			File:   "attorneys.jsonl",
		},
		Metrics: MetricsConfig{
			ListenAddress: "${METRICS_ADDR:-}",
		},
	}
	applyDefaults(config)
	return config
}

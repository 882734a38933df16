// internal/config/config_test.go
package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromBytes_Valid(t *testing.T) {
	yaml := `
name: test-job
target:
  practice_area: personal injury
  state: illinois
  city: chicago
limits:
  max_records: 50
enrichment:
  enabled: true
  batch_pause: 500ms
output:
  format: jsonl
  file: out.jsonl
`
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Name != "test-job" {
		t.Errorf("expected name test-job, got %q", cfg.Name)
	}
	if cfg.Limits.MaxRecords != 50 {
		t.Errorf("expected max_records 50, got %d", cfg.Limits.MaxRecords)
	}
	if cfg.Enrichment.BatchPause.Std() != 500*time.Millisecond {
		t.Errorf("expected 500ms batch pause, got %v", cfg.Enrichment.BatchPause.Std())
	}
	// Defaults fill what the file omits.
	if cfg.Limits.MaxPages != 100 {
		t.Errorf("expected default max_pages 100, got %d", cfg.Limits.MaxPages)
	}
	if cfg.Browser == nil || !cfg.Browser.Headless {
		t.Error("expected default headless browser config")
	}
}

func TestLoadFromBytes_MissingTarget(t *testing.T) {
	_, err := LoadFromBytes([]byte("name: broken\noutput:\n  format: jsonl\n"))
	if err == nil {
		t.Fatal("expected error for missing target")
	}
	if !strings.Contains(err.Error(), "target") {
		t.Errorf("expected target error, got: %v", err)
	}
}

func TestLoadFromBytes_MaxRecordsOutOfRange(t *testing.T) {
	yaml := `
target:
  url: https://www.avvo.com/dui-lawyer/tx.html
limits:
  max_records: 50000
`
	if _, err := LoadFromBytes([]byte(yaml)); err == nil {
		t.Fatal("expected error for out-of-range max_records")
	}
}

func TestValidate_BadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "www.avvo.com/x.html"},
		{"wrong scheme", "ftp://example.com/x"},
		{"http-prefixed scheme", "httpx://example.com/x"},
		{"missing host", "https:///lawyers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Target: TargetConfig{URL: tt.url}, Output: OutputConfig{Format: "jsonl"}}
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %q", tt.url)
			}
		})
	}
}

func TestStartURL_Synthesis(t *testing.T) {
	tests := []struct {
		name     string
		target   TargetConfig
		expected string
	}{
		{
			"direct url wins",
			TargetConfig{URL: "https://www.avvo.com/custom.html", PracticeArea: "dui", State: "texas"},
			"https://www.avvo.com/custom.html",
		},
		{
			"state only",
			TargetConfig{PracticeArea: "personal injury", State: "illinois"},
			"https://www.avvo.com/personal-injury-lawyer/illinois.html",
		},
		{
			"with city",
			TargetConfig{PracticeArea: "Family Law", State: "New York", City: "New York City"},
			"https://www.avvo.com/family-law-lawyer/new-york/new-york-city.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Target: tt.target}
			if got := cfg.StartURL(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExpandEnvironmentVariables(t *testing.T) {
	t.Setenv("LEX_TEST_CITY", "houston")

	yaml := `
target:
  practice_area: dui
  state: texas
  city: ${LEX_TEST_CITY}
output:
  file: ${LEX_TEST_OUT:-fallback.jsonl}
`
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.City != "houston" {
		t.Errorf("expected env expansion, got %q", cfg.Target.City)
	}
	if cfg.Output.File != "fallback.jsonl" {
		t.Errorf("expected fallback default, got %q", cfg.Output.File)
	}
}

func TestGenerateTemplate_Valid(t *testing.T) {
	template := GenerateTemplate()
	if err := template.Validate(); err != nil {
		t.Fatalf("generated template does not validate: %v", err)
	}
}

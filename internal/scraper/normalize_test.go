// internal/scraper/normalize_test.go
package scraper

import (
	"testing"
)

func TestNormalizeEntry_StructuredFields(t *testing.T) {
	entry := RawEntry{
		"name":       "Jane Smith",
		"url":        "/attorneys/jane-smith.html",
		"telephone":  "312-555-0101",
		"knowsAbout": []interface{}{"personal-injury", "medical-malpractice"},
		"aggregateRating": map[string]interface{}{
			"ratingValue": 4.8,
			"reviewCount": float64(120),
		},
		"address": map[string]interface{}{
			"addressLocality": "Chicago",
			"addressRegion":   "IL",
		},
	}

	a := NormalizeEntry(entry)

	if a.Name != "Jane Smith" {
		t.Errorf("expected name Jane Smith, got %q", a.Name)
	}
	if a.ProfileURL != BaseOrigin+"/attorneys/jane-smith.html" {
		t.Errorf("expected absolute profile URL, got %q", a.ProfileURL)
	}
	if a.Rating == nil || *a.Rating != 4.8 {
		t.Errorf("expected rating 4.8, got %v", a.Rating)
	}
	if a.ReviewCount != 120 {
		t.Errorf("expected 120 reviews, got %d", a.ReviewCount)
	}
	if a.Location != "Chicago, IL" {
		t.Errorf("expected location Chicago, IL, got %q", a.Location)
	}
	if len(a.PracticeAreas) != 2 || a.PracticeAreas[0] != "Personal Injury" {
		t.Errorf("expected humanized practice areas, got %v", a.PracticeAreas)
	}
	if a.ScrapedAt.IsZero() {
		t.Error("expected scrape timestamp to be set")
	}
}

func TestNormalizeEntry_Defaults(t *testing.T) {
	a := NormalizeEntry(RawEntry{})

	if a.Name != "Unknown" {
		t.Errorf("expected placeholder name, got %q", a.Name)
	}
	if a.Rating != nil {
		t.Errorf("expected absent rating to stay nil, got %v", a.Rating)
	}
	if a.PracticeAreas == nil || len(a.PracticeAreas) != 0 {
		t.Errorf("expected empty practice areas slice, got %v", a.PracticeAreas)
	}
	if a.BarAdmissions == nil || a.Languages == nil {
		t.Error("expected list fields to default to empty slices")
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"plain string kept verbatim", "123 Main St, Springfield", "123 Main St, Springfield"},
		{
			"structured address joined",
			map[string]interface{}{"addressLocality": "Springfield", "addressRegion": "IL", "postalCode": ""},
			"Springfield, IL",
		},
		{
			"blank components dropped",
			map[string]interface{}{"addressLocality": "  ", "addressRegion": "TX"},
			"TX",
		},
		{
			"alias keys yield one value per component",
			map[string]interface{}{"addressLocality": "Chicago", "locality": "Chicago", "addressRegion": "IL", "region": "IL"},
			"Chicago, IL",
		},
		{
			"bare keys accepted when schema names absent",
			map[string]interface{}{"locality": "Austin", "region": "TX"},
			"Austin, TX",
		},
		{
			"matching locality and region both kept",
			map[string]interface{}{"addressLocality": "New York", "addressRegion": "New York"},
			"New York, New York",
		},
		{"unsupported shape", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeAddress(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHumanizeArea(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"personal-injury", "Personal Injury"},
		{"divorce", "Divorce"},
		{"Criminal Defense", "Criminal Defense"}, // already cased, kept as-is
		{"DUI Defense", "DUI Defense"},
	}

	for _, tt := range tests {
		if got := humanizeArea(tt.input); got != tt.expected {
			t.Errorf("humanizeArea(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestNormalizeEntry_SingleServiceArea(t *testing.T) {
	a := NormalizeEntry(RawEntry{"serviceArea": "family-law"})
	if len(a.PracticeAreas) != 1 || a.PracticeAreas[0] != "Family Law" {
		t.Errorf("expected single humanized area, got %v", a.PracticeAreas)
	}
}

func TestNormalizeEntry_NumericStrings(t *testing.T) {
	entry := RawEntry{
		"name":          "Bob Jones",
		"rating":        "4.5",
		"reviewCount":   "37",
		"yearsLicensed": "12",
	}

	a := NormalizeEntry(entry)
	if a.Rating == nil || *a.Rating != 4.5 {
		t.Errorf("expected parsed rating 4.5, got %v", a.Rating)
	}
	if a.ReviewCount != 37 {
		t.Errorf("expected 37 reviews, got %d", a.ReviewCount)
	}
	if a.YearsLicensed == nil || *a.YearsLicensed != 12 {
		t.Errorf("expected 12 years licensed, got %v", a.YearsLicensed)
	}
}

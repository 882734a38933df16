// internal/scraper/scriptdata.go
package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scriptMarkers are the substrings that make an inline script body a
// candidate for data mining.
var scriptMarkers = []string{"lawyer", "attorney", "solo_results", "searchResults"}

// listingKeys are the field names under which candidate listing arrays are
// looked up, directly or nested one level under a "data" wrapper.
var listingKeys = []string{"lawyers", "attorneys", "results", "listings", "professionals", "items"}

// ScriptDataStrategy scans inline script bodies for listing data serialized
// as JSON. Per-candidate failures are skipped silently.
type ScriptDataStrategy struct{}

func (s *ScriptDataStrategy) Name() string { return "script-data" }

func (s *ScriptDataStrategy) Extract(doc *goquery.Document) []Attorney {
	var records []Attorney

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if len(records) > 0 {
			return
		}
		if _, external := sel.Attr("src"); external {
			return
		}
		body := sel.Text()
		if !containsMarker(body) {
			return
		}
		obj := firstJSONObject(body)
		if obj == "" {
			return
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
			return
		}
		for _, entry := range findListingEntries(parsed) {
			records = append(records, NormalizeEntry(entry))
		}
	})

	return records
}

func containsMarker(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range scriptMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// firstJSONObject returns the first balanced brace-delimited object in the
// script body, respecting string literals and escapes.
func firstJSONObject(body string) string {
	start := strings.IndexByte(body, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(body); i++ {
		c := body[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return body[start : i+1]
				}
			}
		}
	}
	return ""
}

// findListingEntries looks for an array of listing-like objects under the
// known keys, including one level of nesting under "data".
func findListingEntries(parsed map[string]interface{}) []RawEntry {
	if entries := entriesUnderKeys(parsed); len(entries) > 0 {
		return entries
	}
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		return entriesUnderKeys(data)
	}
	return nil
}

func entriesUnderKeys(obj map[string]interface{}) []RawEntry {
	for _, key := range listingKeys {
		list, ok := obj[key].([]interface{})
		if !ok || len(list) == 0 {
			continue
		}
		entries := make([]RawEntry, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]interface{}); ok {
				entries = append(entries, RawEntry(m))
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}
	return nil
}

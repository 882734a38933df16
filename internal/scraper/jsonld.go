// internal/scraper/jsonld.go
package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// attorneyTypes is the set of schema.org @type values recognized as
// attorney-like entries.
var attorneyTypes = map[string]bool{
	"Attorney":     true,
	"Person":       true,
	"Lawyer":       true,
	"LegalService": true,
}

// StructuredDataStrategy mines ld+json script blocks for attorney entries.
// It handles a top-level list, a single entry, a @graph wrapper, and an
// ItemList of wrapped entries. A block that fails to parse is skipped
// without affecting its siblings.
type StructuredDataStrategy struct{}

func (s *StructuredDataStrategy) Name() string { return "structured-data" }

func (s *StructuredDataStrategy) Extract(doc *goquery.Document) []Attorney {
	var records []Attorney

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var parsed interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &parsed); err != nil {
			return
		}
		for _, entry := range collectEntries(parsed) {
			records = append(records, NormalizeEntry(entry))
		}
	})

	return records
}

// collectEntries unwraps the four recognized container shapes into a flat
// list of candidate entries.
func collectEntries(parsed interface{}) []RawEntry {
	var out []RawEntry

	switch v := parsed.(type) {
	case []interface{}:
		for _, item := range v {
			out = append(out, collectEntries(item)...)
		}
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				out = append(out, collectEntries(item)...)
			}
			return out
		}
		if entryType(v) == "ItemList" {
			if items, ok := v["itemListElement"].([]interface{}); ok {
				for _, item := range items {
					wrapper, ok := item.(map[string]interface{})
					if !ok {
						continue
					}
					// ListItem wrappers carry the entry under "item";
					// some sites inline the entry directly.
					if inner, ok := wrapper["item"].(map[string]interface{}); ok {
						out = append(out, collectEntries(inner)...)
					} else {
						out = append(out, collectEntries(wrapper)...)
					}
				}
			}
			return out
		}
		if attorneyTypes[entryType(v)] {
			out = append(out, RawEntry(v))
		}
	}

	return out
}

// entryType reads the @type declaration, which may be a string or a list.
func entryType(entry map[string]interface{}) string {
	switch t := entry["@type"].(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && attorneyTypes[strings.TrimSpace(s)] {
				return strings.TrimSpace(s)
			}
		}
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

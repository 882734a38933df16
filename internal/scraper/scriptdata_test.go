// internal/scraper/scriptdata_test.go
package scraper

import (
	"testing"
)

func TestScriptDataStrategy_InitialState(t *testing.T) {
	html := `<html><body>
	<script src="/assets/app.js"></script>
	<script>
	window.__INITIAL_STATE__ = {"data": {"lawyers": [
		{"name": "Jane Smith", "profile_url": "/attorneys/jane-smith.html", "rating": 4.7},
		{"name": "Bob Jones", "profile_url": "/attorneys/bob-jones.html"}
	]}};
	</script>
	</body></html>`

	records := (&ScriptDataStrategy{}).Extract(mustDoc(t, html))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Jane Smith" {
		t.Errorf("expected Jane Smith, got %q", records[0].Name)
	}
	if records[0].Rating == nil || *records[0].Rating != 4.7 {
		t.Errorf("expected rating 4.7, got %v", records[0].Rating)
	}
	if records[1].ProfileURL != BaseOrigin+"/attorneys/bob-jones.html" {
		t.Errorf("expected resolved link, got %q", records[1].ProfileURL)
	}
}

func TestScriptDataStrategy_NoMarkers(t *testing.T) {
	html := `<html><body><script>var cart = {"items": [{"sku": "a1"}]};</script></body></html>`
	if records := (&ScriptDataStrategy{}).Extract(mustDoc(t, html)); len(records) != 0 {
		t.Errorf("expected no records from unrelated script, got %d", len(records))
	}
}

func TestScriptDataStrategy_StopsAfterFirstHit(t *testing.T) {
	html := `<html><body>
	<script>var a = {"attorneys": [{"name": "First Hit"}]};</script>
	<script>var b = {"attorneys": [{"name": "Second Script"}]};</script>
	</body></html>`

	records := (&ScriptDataStrategy{}).Extract(mustDoc(t, html))
	if len(records) != 1 || records[0].Name != "First Hit" {
		t.Errorf("expected only the first script's records, got %v", records)
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"simple", `var x = {"a": 1};`, `{"a": 1}`},
		{"nested", `f({"a": {"b": 2}})`, `{"a": {"b": 2}}`},
		{"braces in strings", `{"a": "}{"}`, `{"a": "}{"}`},
		{"unbalanced", `var x = {"a": 1`, ""},
		{"no object", `var x = 1;`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstJSONObject(tt.body); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

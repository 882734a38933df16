// internal/scraper/strategies_test.go
package scraper

import (
	"testing"

	"github.com/valpere/LexScrapexter/internal/utils"
)

const dualSourceHTML = `<html><head>
<script type="application/ld+json">
{"@type": "Attorney", "name": "Metadata Winner", "url": "/attorneys/winner.html"}
</script>
</head><body>
<div class="lawyer-card">
  <h3><a href="/attorneys/dom-loser.html">DOM Loser</a></h3>
</div>
</body></html>`

func TestExtractionPipeline_Order(t *testing.T) {
	pipeline := NewExtractionPipeline(utils.NopLogger{})

	records, method := pipeline.Extract(mustDoc(t, dualSourceHTML))
	if method != "structured-data" {
		t.Fatalf("expected structured-data to win, got %q", method)
	}
	if len(records) != 1 || records[0].Name != "Metadata Winner" {
		t.Errorf("expected the metadata record only, got %v", records)
	}
}

func TestExtractionPipeline_FallsThroughToDOM(t *testing.T) {
	html := `<html><body>
	<div class="lawyer-card"><h3><a href="/attorneys/only-dom.html">Only Dom</a></h3></div>
	</body></html>`

	records, method := NewExtractionPipeline(utils.NopLogger{}).Extract(mustDoc(t, html))
	if method != "dom-parsing" {
		t.Fatalf("expected dom-parsing, got %q", method)
	}
	if len(records) != 1 || records[0].Name != "Only Dom" {
		t.Errorf("expected the DOM record, got %v", records)
	}
}

func TestExtractionPipeline_AllEmpty(t *testing.T) {
	records, method := NewExtractionPipeline(utils.NopLogger{}).Extract(mustDoc(t, "<html><body><p>nothing here</p></body></html>"))
	if method != "none" {
		t.Errorf("expected method none, got %q", method)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		href     string
		expected string
	}{
		{"/attorneys/x.html", BaseOrigin + "/attorneys/x.html"},
		{"https://example.com/x", "https://example.com/x"},
		{"  ", ""},
		{"attorneys/y.html", BaseOrigin + "/attorneys/y.html"},
	}

	for _, tt := range tests {
		if got := resolveLink(tt.href); got != tt.expected {
			t.Errorf("resolveLink(%q): expected %q, got %q", tt.href, tt.expected, got)
		}
	}
}

func TestFirstNumberAndInteger(t *testing.T) {
	if v, ok := firstNumber("Rated 4.8 out of 5"); !ok || v != 4.8 {
		t.Errorf("expected 4.8, got %v (ok=%v)", v, ok)
	}
	if n, ok := firstInteger("1,204 reviews"); !ok || n != 1204 {
		t.Errorf("expected 1204, got %v (ok=%v)", n, ok)
	}
	if _, ok := firstNumber("no digits"); ok {
		t.Error("expected no number in plain text")
	}
}

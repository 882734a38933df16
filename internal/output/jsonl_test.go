// internal/output/jsonl_test.go
package output

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/valpere/LexScrapexter/internal/scraper"
)

func TestJSONLSink_PushAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "attorneys.jsonl")

	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}
	defer sink.Close()

	rating := 4.8
	records := []scraper.Attorney{
		{Name: "Jane Smith", Rating: &rating, ProfileURL: "https://www.avvo.com/attorneys/jane.html"},
		{Name: "Bob Jones"},
	}
	if err := sink.Push(context.Background(), records); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer file.Close()

	var lines []scraper.Attorney
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var a scraper.Attorney
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, a)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Jane Smith" || lines[0].Rating == nil || *lines[0].Rating != 4.8 {
		t.Errorf("first record round-trip mismatch: %+v", lines[0])
	}
}

func TestJSONLSink_ClosedSinkRejectsPush(t *testing.T) {
	sink, err := NewJSONLSink(filepath.Join(t.TempDir(), "x.jsonl"))
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}
	sink.Close()

	if err := sink.Push(context.Background(), []scraper.Attorney{{Name: "X"}}); err == nil {
		t.Error("expected push on closed sink to fail")
	}
}

func TestNewDatasetSink_UnknownFormat(t *testing.T) {
	if _, err := NewDatasetSink("xml", "x.xml"); err == nil {
		t.Error("expected unsupported format error")
	}
}

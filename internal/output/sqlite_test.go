// internal/output/sqlite_test.go
package output

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/LexScrapexter/internal/scraper"
)

func TestSQLiteSink_PushAndUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attorneys.db")

	sink, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}

	ctx := context.Background()
	rating := 4.5
	record := scraper.Attorney{
		Name:          "Jane Smith",
		Rating:        &rating,
		PracticeAreas: []string{"Personal Injury"},
		ProfileURL:    "https://www.avvo.com/attorneys/jane.html",
		ScrapedAt:     time.Now().UTC(),
	}
	if err := sink.Push(ctx, []scraper.Attorney{record}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	// Same profile again with new data updates rather than duplicates.
	record.Name = "Jane A. Smith"
	if err := sink.Push(ctx, []scraper.Attorney{record}); err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM attorneys").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected upsert to keep 1 row, got %d", count)
	}

	var name, areas string
	row := db.QueryRow("SELECT name, practice_areas FROM attorneys WHERE profile_url = ?", record.ProfileURL)
	if err := row.Scan(&name, &areas); err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if name != "Jane A. Smith" {
		t.Errorf("expected updated name, got %q", name)
	}
	if areas != `["Personal Injury"]` {
		t.Errorf("expected JSON-encoded areas, got %q", areas)
	}
}

func TestSQLiteSink_EmptyProfileURLsKeptSeparate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attorneys.db")
	sink, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}
	defer sink.Close()

	records := []scraper.Attorney{
		{Name: "Unknown"},
		{Name: "Also Unknown"},
	}
	if err := sink.Push(context.Background(), records); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM attorneys WHERE profile_url = ''").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 independent rows without profile URL, got %d", count)
	}
}

// internal/output/sqlite.go

package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/valpere/LexScrapexter/internal/scraper"
)

const attorneysSchema = `
CREATE TABLE IF NOT EXISTS attorneys (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_url    TEXT NOT NULL DEFAULT '',
	name           TEXT NOT NULL,
	rating         REAL,
	review_count   INTEGER,
	practice_areas TEXT,
	location       TEXT,
	phone          TEXT,
	email          TEXT,
	website        TEXT,
	years_licensed INTEGER,
	bar_admissions TEXT,
	languages      TEXT,
	bio            TEXT,
	education      TEXT,
	awards         TEXT,
	scraped_at     TIMESTAMP
)`

const attorneysIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_attorneys_profile_url
ON attorneys(profile_url) WHERE profile_url <> ''`

const insertAttorney = `
INSERT INTO attorneys (
	profile_url, name, rating, review_count, practice_areas, location,
	phone, email, website, years_licensed, bar_admissions, languages,
	bio, education, awards, scraped_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_url) WHERE profile_url <> '' DO UPDATE SET
	name = excluded.name,
	rating = excluded.rating,
	review_count = excluded.review_count,
	practice_areas = excluded.practice_areas,
	location = excluded.location,
	phone = excluded.phone,
	email = excluded.email,
	website = excluded.website,
	years_licensed = excluded.years_licensed,
	bar_admissions = excluded.bar_admissions,
	languages = excluded.languages,
	bio = excluded.bio,
	education = excluded.education,
	awards = excluded.awards,
	scraped_at = excluded.scraped_at`

// SQLiteSink persists attorney records to a local SQLite database, upserting
// on profile URL so re-runs refresh rather than duplicate rows.
type SQLiteSink struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database, applies the schema, and
// tunes the connection for a single writer.
func NewSQLiteSink(databasePath string) (*SQLiteSink, error) {
	if databasePath == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}
	if dir := filepath.Dir(databasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", databasePath+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(attorneysSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create attorneys table: %w", err)
	}

	// Records without a profile URL are kept as independent rows; everything
	// else upserts on its profile URL across runs.
	if _, err := db.Exec(attorneysIndex); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create attorneys index: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

// Push upserts the batch inside a single transaction.
func (s *SQLiteSink) Push(ctx context.Context, records []scraper.Attorney) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertAttorney)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx,
			record.ProfileURL,
			record.Name,
			nullableFloat(record.Rating),
			record.ReviewCount,
			jsonList(record.PracticeAreas),
			record.Location,
			record.Phone,
			record.Email,
			record.Website,
			nullableInt(record.YearsLicensed),
			jsonList(record.BarAdmissions),
			jsonList(record.Languages),
			record.Bio,
			jsonList(record.Education),
			jsonList(record.Awards),
			record.ScrapedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record %q: %w", record.ProfileURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// jsonList serializes a string slice for a TEXT column. Empty slices store
// as "[]" so readers never see NULL for list fields.
func jsonList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

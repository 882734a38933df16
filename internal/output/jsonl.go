// internal/output/jsonl.go

// Package output provides the record sinks (JSON Lines and SQLite) and the
// file-backed artifact store used for diagnostic snapshots and run
// summaries.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/valpere/LexScrapexter/internal/scraper"
)

// JSONLSink appends attorney records to a JSON Lines file, one object per
// line, flushing after every push so partial runs still leave usable data.
type JSONLSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewJSONLSink creates the destination file, making parent directories as
// needed. An existing file is truncated.
func NewJSONLSink(filename string) (*JSONLSink, error) {
	if filename == "" {
		return nil, fmt.Errorf("JSONL filename is required")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create JSONL file: %w", err)
	}

	return &JSONLSink{file: file}, nil
}

// Push writes each record as one JSON line.
func (s *JSONLSink) Push(ctx context.Context, records []scraper.Attorney) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("JSONL sink is closed")
	}

	encoder := json.NewEncoder(s.file)
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	return s.file.Sync()
}

// Close closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

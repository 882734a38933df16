// internal/output/manager.go

package output

import (
	"context"
	"fmt"

	"github.com/valpere/LexScrapexter/internal/scraper"
)

// DatasetSink is a closable record sink.
type DatasetSink interface {
	Push(ctx context.Context, records []scraper.Attorney) error
	Close() error
}

// NewDatasetSink selects the sink implementation for a format name.
func NewDatasetSink(format, file string) (DatasetSink, error) {
	switch format {
	case "jsonl", "":
		return NewJSONLSink(file)
	case "sqlite":
		return NewSQLiteSink(file)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

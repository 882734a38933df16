// internal/output/artifacts.go

package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ArtifactStore is a file-backed key-value store for run artifacts:
// diagnostic page snapshots, their metadata, and the run summary. Keys map
// to files in a flat directory, with the extension chosen from the content
// type.
type ArtifactStore struct {
	mu  sync.Mutex
	dir string
}

// NewArtifactStore ensures the directory exists and returns the store.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Set writes the value to <dir>/<key>.<ext>, replacing any previous value
// for the key.
func (s *ArtifactStore) Set(ctx context.Context, key string, value []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("artifact key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, sanitizeKey(key)+extensionFor(contentType))
	if err := os.WriteFile(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write artifact %q: %w", key, err)
	}
	return nil
}

// sanitizeKey keeps keys safe as file names.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "html"):
		return ".html"
	case strings.Contains(contentType, "json"):
		return ".json"
	default:
		return ".txt"
	}
}

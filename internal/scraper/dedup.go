// internal/scraper/dedup.go
package scraper

import (
	"sync"

	"github.com/valpere/LexScrapexter/internal/utils"
)

// Deduplicator tracks the profile URLs admitted during a run. The set is
// append-only for the run's lifetime and safe for concurrent page handlers.
type Deduplicator struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	logger utils.Logger
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator(logger utils.Logger) *Deduplicator {
	return &Deduplicator{
		seen:   make(map[string]struct{}),
		logger: logger,
	}
}

// Admit reports whether the record should be emitted. Records without a
// profile URL carry no identity and are always admitted.
func (d *Deduplicator) Admit(a Attorney) bool {
	if a.ProfileURL == "" {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, dup := d.seen[a.ProfileURL]; dup {
		d.logger.WithField("profile_url", a.ProfileURL).Debug("duplicate record discarded")
		return false
	}
	d.seen[a.ProfileURL] = struct{}{}
	return true
}

// Size returns the number of identity keys recorded so far.
func (d *Deduplicator) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

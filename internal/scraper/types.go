// internal/scraper/types.go

// Package scraper implements the attorney-directory scraping core: challenge
// gating, the ordered extraction-strategy chain, record normalization,
// cross-page deduplication, detail-page enrichment, and pagination control.
package scraper

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// BaseOrigin is the site origin used to resolve relative profile links.
const BaseOrigin = "https://www.avvo.com"

// Attorney is the canonical record emitted by a run.
type Attorney struct {
	Name          string    `json:"name"`
	Rating        *float64  `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	PracticeAreas []string  `json:"practiceAreas"`
	Location      string    `json:"location"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	YearsLicensed *int      `json:"yearsLicensed"`
	BarAdmissions []string  `json:"barAdmissions"`
	Languages     []string  `json:"languages"`
	ProfileURL    string    `json:"profileUrl"`
	Bio           string    `json:"bio"`
	Education     []string  `json:"education,omitempty"`
	Awards        []string  `json:"awards,omitempty"`
	ScrapedAt     time.Time `json:"scrapedAt"`
}

// RawEntry is an object-shaped record as found in structured metadata or
// embedded script data, before normalization.
type RawEntry map[string]interface{}

// ChallengeState represents the state of the anti-bot challenge state machine
// for a single page.
type ChallengeState int

const (
	ChallengeFresh ChallengeState = iota
	ChallengeDetected
	ChallengeSolving
	ChallengeBypassed
	ChallengeFailed
)

// String returns the state name for logging.
func (s ChallengeState) String() string {
	switch s {
	case ChallengeFresh:
		return "fresh"
	case ChallengeDetected:
		return "detected"
	case ChallengeSolving:
		return "solving"
	case ChallengeBypassed:
		return "bypassed"
	case ChallengeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Page is the rendered-page handle the core operates on. The browser
// collaborator provides the concrete implementation; tests provide fakes.
type Page interface {
	// URL returns the page's current URL.
	URL() string

	// Title returns the document title.
	Title(ctx context.Context) (string, error)

	// HTML returns the full rendered document.
	HTML(ctx context.Context) (string, error)

	// Click attempts a single click on the first element matching the
	// selector. A missing element is not an error.
	Click(ctx context.Context, selector string) error

	// WaitQuiescence waits for the page's network activity to go idle, up
	// to the given timeout.
	WaitQuiescence(ctx context.Context, timeout time.Duration) error

	// Cookies returns the page's current cookie set for session reuse.
	Cookies(ctx context.Context) ([]*http.Cookie, error)

	// Close releases the page handle.
	Close() error
}

// SessionContext carries browser session credentials into out-of-browser
// detail-page fetches.
type SessionContext struct {
	Cookies   []*http.Cookie
	UserAgent string
}

// EnrichmentOverlay is the per-record result of a detail-page fetch. It is
// merged into an Attorney or discarded; never persisted on its own.
type EnrichmentOverlay struct {
	Bio       string
	Education []string
	Awards    []string
	Blocked   bool
}

// RunBudget holds the run-scoped counters shared across concurrent page
// handlers. All mutation goes through its methods.
type RunBudget struct {
	mu         sync.Mutex
	maxRecords int // 0 means unbounded
	maxPages   int
	records    int
	pages      int
	blocked    int
	method     string
	started    time.Time
}

// NewRunBudget creates a budget. maxRecords of zero means unbounded.
func NewRunBudget(maxRecords, maxPages int) *RunBudget {
	return &RunBudget{
		maxRecords: maxRecords,
		maxPages:   maxPages,
		started:    time.Now(),
	}
}

// Reserve claims up to n record slots and returns how many were granted.
func (b *RunBudget) Reserve(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxRecords <= 0 {
		b.records += n
		return n
	}
	remaining := b.maxRecords - b.records
	if remaining <= 0 {
		return 0
	}
	if n > remaining {
		n = remaining
	}
	b.records += n
	return n
}

// PageDone records a completed page iteration.
func (b *RunBudget) PageDone() {
	b.mu.Lock()
	b.pages++
	b.mu.Unlock()
}

// RecordBlocked increments the enrichment blocked counter.
func (b *RunBudget) RecordBlocked() {
	b.mu.Lock()
	b.blocked++
	b.mu.Unlock()
}

// SetMethod records the winning extraction method label. The first page to
// yield records decides it.
func (b *RunBudget) SetMethod(label string) {
	b.mu.Lock()
	if b.method == "" {
		b.method = label
	}
	b.mu.Unlock()
}

// HasCapacity reports whether the record budget still admits new records.
func (b *RunBudget) HasCapacity() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxRecords <= 0 || b.records < b.maxRecords
}

// PagesRemaining reports whether the page ceiling has been reached.
func (b *RunBudget) PagesRemaining() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pages < b.maxPages
}

// Snapshot returns the current counter values.
func (b *RunBudget) Snapshot() (records, pages, blocked int, method string, started time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.records, b.pages, b.blocked, b.method, b.started
}

// internal/monitoring/metrics.go

// Package monitoring exposes run metrics over Prometheus and a small status
// endpoint.
package monitoring

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for a scraping run. A nil *Metrics
// is valid and records nothing, so instrumentation points never need guards.
type Metrics struct {
	pagesScraped      *prometheus.CounterVec
	recordsExtracted  *prometheus.CounterVec
	recordsWritten    prometheus.Counter
	challengeOutcomes *prometheus.CounterVec
	profilesBlocked   prometheus.Counter
	duplicatesDropped prometheus.Counter
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// NewMetrics registers the collectors on the default registry. Call at most
// once per process; use Default for shared access.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "lexscrapexter"
	}

	return &Metrics{
		pagesScraped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_scraped_total",
			Help:      "Listing pages processed, labeled by winning extraction method.",
		}, []string{"method"}),
		recordsExtracted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_extracted_total",
			Help:      "Attorney records extracted before deduplication, by method.",
		}, []string{"method"}),
		recordsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Canonical records pushed to the sink.",
		}),
		challengeOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenge_outcomes_total",
			Help:      "Anti-bot challenge evaluations by final state.",
		}, []string{"state"}),
		profilesBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_blocked_total",
			Help:      "Detail-page fetches rejected by the anti-bot layer.",
		}),
		duplicatesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_dropped_total",
			Help:      "Records discarded by the cross-page deduplicator.",
		}),
	}
}

// Default returns the process-wide metrics instance.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics("")
	})
	return defaultMetrics
}

// PageScraped records a processed listing page.
func (m *Metrics) PageScraped(method string) {
	if m == nil {
		return
	}
	m.pagesScraped.WithLabelValues(method).Inc()
}

// RecordsExtracted records pre-dedup extraction output.
func (m *Metrics) RecordsExtracted(method string, n int) {
	if m == nil {
		return
	}
	m.recordsExtracted.WithLabelValues(method).Add(float64(n))
}

// RecordsWritten records sink pushes.
func (m *Metrics) RecordsWritten(n int) {
	if m == nil {
		return
	}
	m.recordsWritten.Add(float64(n))
}

// ChallengeOutcome records a challenge evaluation result.
func (m *Metrics) ChallengeOutcome(state string) {
	if m == nil {
		return
	}
	m.challengeOutcomes.WithLabelValues(state).Inc()
}

// ProfileBlocked records a blocked enrichment fetch.
func (m *Metrics) ProfileBlocked() {
	if m == nil {
		return
	}
	m.profilesBlocked.Inc()
}

// DuplicateDropped records a deduplicator rejection.
func (m *Metrics) DuplicateDropped() {
	if m == nil {
		return
	}
	m.duplicatesDropped.Inc()
}

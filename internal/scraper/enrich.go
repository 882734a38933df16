// internal/scraper/enrich.go
package scraper

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/valpere/LexScrapexter/internal/antidetect"
	"github.com/valpere/LexScrapexter/internal/monitoring"
	"github.com/valpere/LexScrapexter/internal/utils"
)

// Candidate selectors per enrichment field; first non-empty wins.
var (
	bioSelectors       = []string{"#bio", ".bio", ".about-content", "[class*='biography']", "section.about p"}
	educationSelectors = []string{".education li", "[class*='education'] li", ".education-item"}
	awardSelectors     = []string{".awards li", "[class*='award'] li"}
)

// EnricherConfig configures the detail-page enrichment pass.
type EnricherConfig struct {
	Concurrency int           `yaml:"concurrency" json:"concurrency"`
	BatchPause  time.Duration `yaml:"batch_pause" json:"batch_pause"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	RateLimit   float64       `yaml:"rate_limit" json:"rate_limit"` // requests per second
}

// DefaultEnricherConfig returns pacing safe for anti-bot-protected hosts.
func DefaultEnricherConfig() EnricherConfig {
	return EnricherConfig{
		Concurrency: 5,
		BatchPause:  2 * time.Second,
		Timeout:     15 * time.Second,
		RateLimit:   2.0,
	}
}

// ProfileEnricher fetches attorney detail pages out-of-browser, reusing the
// browser session's cookies and user agent, and overlays bio/education/award
// fields onto the records. Concurrency is strictly bounded to the batch
// size; batches run sequentially with a fixed pause between them.
type ProfileEnricher struct {
	config  EnricherConfig
	client  *http.Client
	limiter *rate.Limiter
	jitter  *antidetect.DelayRandomizer
	metrics *monitoring.Metrics
	logger  utils.Logger
}

// NewProfileEnricher creates an enricher. metrics may be nil.
func NewProfileEnricher(config EnricherConfig, metrics *monitoring.Metrics, logger utils.Logger) *ProfileEnricher {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultEnricherConfig().Concurrency
	}
	if config.BatchPause < 0 {
		config.BatchPause = DefaultEnricherConfig().BatchPause
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultEnricherConfig().Timeout
	}
	if config.RateLimit <= 0 {
		config.RateLimit = DefaultEnricherConfig().RateLimit
	}

	return &ProfileEnricher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.Concurrency),
		jitter:  antidetect.NewDelayRandomizer(config.BatchPause/2, config.BatchPause*3/2),
		metrics: metrics,
		logger:  logger,
	}
}

// Enrich augments the records in place and returns them. Records without a
// profile link pass through unchanged. Blocked or failed fetches leave the
// record's pre-enrichment fields intact; blocks increment the run counter
// and surface as one aggregate warning, never as an error.
func (e *ProfileEnricher) Enrich(ctx context.Context, records []Attorney, session SessionContext, budget *RunBudget) []Attorney {
	blocked := 0
	var blockedMu sync.Mutex

	for start := 0; start < len(records); start += e.config.Concurrency {
		end := start + e.config.Concurrency
		if end > len(records) {
			end = len(records)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if records[i].ProfileURL == "" {
				continue
			}
			wg.Add(1)
			go func(rec *Attorney) {
				defer wg.Done()
				overlay, ok := e.fetchOverlay(ctx, rec.ProfileURL, session)
				if !ok {
					return
				}
				if overlay.Blocked {
					budget.RecordBlocked()
					e.metrics.ProfileBlocked()
					blockedMu.Lock()
					blocked++
					blockedMu.Unlock()
					return
				}
				mergeOverlay(rec, overlay)
			}(&records[i])
		}
		wg.Wait()

		if end < len(records) && e.config.BatchPause > 0 {
			select {
			case <-time.After(e.jitter.GetDelay()):
			case <-ctx.Done():
				return records
			}
		}
	}

	if blocked > 0 {
		e.logger.WithField("blocked", blocked).Warn("some profile fetches were blocked; records kept without enrichment")
	}
	return records
}

// fetchOverlay performs the bounded GET with one retry. The boolean result
// is false on soft failures where the record should stay untouched.
func (e *ProfileEnricher) fetchOverlay(ctx context.Context, profileURL string, session SessionContext) (EnrichmentOverlay, bool) {
	var overlay EnrichmentOverlay

	for attempt := 0; attempt <= 1; attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return overlay, false
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
		if err != nil {
			e.logger.WithField("url", profileURL).Debugf("profile request build failed: %v", err)
			return overlay, false
		}
		if session.UserAgent != "" {
			req.Header.Set("User-Agent", session.UserAgent)
		}
		for _, cookie := range session.Cookies {
			req.AddCookie(cookie)
		}

		resp, err := e.client.Do(req)
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"url":     profileURL,
				"attempt": attempt,
				"stage":   "enrichment",
			}).Debugf("profile fetch failed: %v", err)
			continue
		}

		overlay, ok := e.readResponse(resp, profileURL)
		return overlay, ok
	}

	return overlay, false
}

func (e *ProfileEnricher) readResponse(resp *http.Response, profileURL string) (EnrichmentOverlay, bool) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusServiceUnavailable:
		return EnrichmentOverlay{Blocked: true}, true
	case resp.StatusCode != http.StatusOK:
		e.logger.WithFields(map[string]interface{}{
			"url":    profileURL,
			"status": resp.StatusCode,
			"stage":  "enrichment",
		}).Debug("profile fetch returned non-200, record kept as-is")
		return EnrichmentOverlay{}, false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return EnrichmentOverlay{}, false
	}

	// A 200 can still be an interstitial served with a challenge title.
	if ContainsChallengeMarker(doc.Find("title").Text()) {
		return EnrichmentOverlay{Blocked: true}, true
	}

	overlay := EnrichmentOverlay{
		Education: firstSelectorList(doc, educationSelectors),
		Awards:    firstSelectorList(doc, awardSelectors),
	}
	for _, selector := range bioSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			overlay.Bio = text
			break
		}
	}
	return overlay, true
}

// mergeOverlay applies the one-time enrichment mutation: bio only when the
// base record has none, education and awards outright.
func mergeOverlay(a *Attorney, overlay EnrichmentOverlay) {
	if a.Bio == "" && overlay.Bio != "" {
		a.Bio = overlay.Bio
	}
	a.Education = overlay.Education
	a.Awards = overlay.Awards
}

func firstSelectorList(doc *goquery.Document, selectors []string) []string {
	for _, selector := range selectors {
		var items []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

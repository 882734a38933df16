// internal/scraper/engine.go
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/valpere/LexScrapexter/internal/monitoring"
	"github.com/valpere/LexScrapexter/internal/utils"
)

// PageFetcher renders a listing page. The browser collaborator implements
// it; tests use fakes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// RecordSink receives batches of canonical records as pages complete. It is
// append-only; the engine never reads back.
type RecordSink interface {
	Push(ctx context.Context, records []Attorney) error
}

// KeyValueStore persists run artifacts: diagnostic snapshots and the run
// summary.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value []byte, contentType string) error
}

// EngineConfig configures a run.
type EngineConfig struct {
	StartURL       string
	MaxRecords     int // 0 means unbounded
	MaxPages       int
	Concurrency    int // parallel page handlers
	EnrichProfiles bool
	UserAgent      string
	PageRate       float64 // listing-page requests per second
}

// Engine sequences challenge gating, extraction, deduplication, enrichment,
// and pagination across a bounded pool of page handlers, and owns the
// run-level counters.
type Engine struct {
	config     EngineConfig
	fetcher    PageFetcher
	solver     *ChallengeSolver
	pipeline   *ExtractionPipeline
	dedup      *Deduplicator
	enricher   *ProfileEnricher
	pagination *PaginationController
	sink       RecordSink
	kv         KeyValueStore
	budget     *RunBudget
	limiter    *rate.Limiter
	metrics    *monitoring.Metrics
	logger     utils.Logger

	pageSeq   int
	pageSeqMu sync.Mutex
}

// NewEngine wires the run components. metrics may be nil.
func NewEngine(config EngineConfig, fetcher PageFetcher, enricher *ProfileEnricher, sink RecordSink, kv KeyValueStore, metrics *monitoring.Metrics, logger utils.Logger) *Engine {
	if config.Concurrency <= 0 {
		config.Concurrency = 2
	}
	if config.MaxPages <= 0 {
		config.MaxPages = 100
	}
	if config.PageRate <= 0 {
		config.PageRate = 0.5
	}

	return &Engine{
		config:     config,
		fetcher:    fetcher,
		solver:     NewChallengeSolver(logger),
		pipeline:   NewExtractionPipeline(logger),
		dedup:      NewDeduplicator(logger),
		enricher:   enricher,
		pagination: NewPaginationController(logger),
		sink:       sink,
		kv:         kv,
		budget:     NewRunBudget(config.MaxRecords, config.MaxPages),
		limiter:    rate.NewLimiter(rate.Limit(config.PageRate), 1),
		metrics:    metrics,
		logger:     logger,
	}
}

// Status reports run progress for the status endpoint.
func (e *Engine) Status() map[string]interface{} {
	records, pages, blocked, method, started := e.budget.Snapshot()
	return map[string]interface{}{
		"records_emitted":  records,
		"pages_processed":  pages,
		"blocked_profiles": blocked,
		"dominant_method":  method,
		"running_since":    started,
	}
}

// Run drives the whole scrape. Page-scoped failures are logged and skipped;
// only run-driver failures (sink or summary writes) surface as errors.
func (e *Engine) Run(ctx context.Context) error {
	if e.config.StartURL == "" {
		return fmt.Errorf("engine started without a start URL")
	}

	urls := make(chan string, 64)
	var pending sync.WaitGroup

	enqueue := func(u string) {
		pending.Add(1)
		select {
		case urls <- u:
		default:
			// Queue full means pagination is far ahead of the workers;
			// dropping keeps the run bounded.
			pending.Done()
			e.logger.WithField("url", u).Warn("page queue full, dropping next-page request")
		}
	}

	enqueue(e.config.StartURL)
	go func() {
		pending.Wait()
		close(urls)
	}()

	var workers sync.WaitGroup
	for i := 0; i < e.config.Concurrency; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for pageURL := range urls {
				e.processPage(ctx, pageURL, enqueue)
				pending.Done()
			}
		}()
	}
	workers.Wait()

	return e.writeSummary(ctx)
}

// processPage runs the per-page sequence to completion and may enqueue the
// next listing page. The page is counted against the budget before the
// next-page decision so the ceiling includes the page just finished.
func (e *Engine) processPage(ctx context.Context, pageURL string, enqueue func(string)) {
	doc := e.extractPage(ctx, pageURL)
	e.budget.PageDone()
	if doc == nil {
		return
	}

	next := e.pagination.NextPage(doc, pageURL)
	if next != "" && e.pagination.ShouldContinue(e.budget) {
		enqueue(next)
	}
}

// extractPage performs challenge gating, extraction, and record emission for
// one listing page. It returns the parsed document, or nil when the page was
// abandoned before yielding one.
func (e *Engine) extractPage(ctx context.Context, pageURL string) *goquery.Document {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil
	}

	page, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"url":   pageURL,
			"stage": "navigation",
		}).Errorf("listing page navigation failed: %v", err)
		return nil
	}
	defer page.Close()

	state := e.solver.Evaluate(ctx, page)
	e.metrics.ChallengeOutcome(state.String())
	if state == ChallengeFailed {
		e.logger.WithField("url", pageURL).Warn("challenge unresolved, abandoning page")
		e.writeSnapshot(ctx, page)
		return nil
	}

	html, err := page.HTML(ctx)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"url":   pageURL,
			"stage": "render",
		}).Errorf("page content unavailable: %v", err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.WithField("url", pageURL).Errorf("page parse failed: %v", err)
		return nil
	}

	records, method := e.pipeline.Extract(doc)
	e.metrics.PageScraped(method)
	if len(records) == 0 {
		e.logger.WithField("url", pageURL).Warn("no strategy yielded records, capturing snapshot")
		e.writeSnapshot(ctx, page)
	} else {
		e.budget.SetMethod(method)
		e.metrics.RecordsExtracted(method, len(records))
	}

	admitted := records[:0:0]
	for _, rec := range records {
		if !e.dedup.Admit(rec) {
			e.metrics.DuplicateDropped()
			continue
		}
		admitted = append(admitted, rec)
	}

	granted := e.budget.Reserve(len(admitted))
	emit := admitted[:granted]

	if len(emit) > 0 {
		if e.config.EnrichProfiles && e.enricher != nil {
			session := e.sessionFrom(ctx, page)
			emit = e.enricher.Enrich(ctx, emit, session, e.budget)
		}
		if err := e.sink.Push(ctx, emit); err != nil {
			e.logger.WithField("url", pageURL).Errorf("sink push failed: %v", err)
		} else {
			e.metrics.RecordsWritten(len(emit))
		}
	}

	return doc
}

// sessionFrom captures the page's cookies for out-of-browser reuse.
func (e *Engine) sessionFrom(ctx context.Context, page Page) SessionContext {
	session := SessionContext{UserAgent: e.config.UserAgent}
	cookies, err := page.Cookies(ctx)
	if err != nil {
		e.logger.Debugf("cookie capture failed, enriching without session cookies: %v", err)
		return session
	}
	session.Cookies = cookies
	return session
}

// writeSnapshot persists the raw page plus structural counts for offline
// inspection of pages that produced nothing.
func (e *Engine) writeSnapshot(ctx context.Context, page Page) {
	if e.kv == nil {
		return
	}

	e.pageSeqMu.Lock()
	e.pageSeq++
	seq := e.pageSeq
	e.pageSeqMu.Unlock()

	html, err := page.HTML(ctx)
	if err != nil {
		e.logger.WithField("url", page.URL()).Debugf("snapshot skipped, content unavailable: %v", err)
		return
	}
	title, _ := page.Title(ctx)

	counts := map[string]interface{}{
		"url":              page.URL(),
		"title":            title,
		"challengeMarkers": ContainsChallengeMarker(title) || ContainsChallengeMarker(html[:min(len(html), bodyProbeLength)]),
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		for _, selector := range cardSelectors {
			counts[selector] = doc.Find(selector).Length()
		}
	}

	key := fmt.Sprintf("DEBUG_PAGE_%d", seq)
	if err := e.kv.Set(ctx, key, []byte(html), "text/html"); err != nil {
		e.logger.Warnf("snapshot write failed for %s: %v", key, err)
		return
	}
	meta, err := json.MarshalIndent(counts, "", "  ")
	if err == nil {
		if err := e.kv.Set(ctx, key+"_META", meta, "application/json"); err != nil {
			e.logger.Warnf("snapshot metadata write failed for %s: %v", key, err)
		}
	}
}

// writeSummary persists the final run record.
func (e *Engine) writeSummary(ctx context.Context) error {
	records, pages, blocked, method, started := e.budget.Snapshot()
	summary := map[string]interface{}{
		"totalRecords":    records,
		"pagesProcessed":  pages,
		"blockedProfiles": blocked,
		"method":          method,
		"duration":        time.Since(started).String(),
		"finishedAt":      time.Now().UTC().Format(time.RFC3339),
	}

	e.logger.WithFields(summary).Info("run complete")

	if e.kv == nil {
		return nil
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("summary marshal failed: %w", err)
	}
	if err := e.kv.Set(ctx, "RUN_SUMMARY", data, "application/json"); err != nil {
		return fmt.Errorf("summary write failed: %w", err)
	}
	return nil
}

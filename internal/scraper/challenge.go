// internal/scraper/challenge.go
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/LexScrapexter/internal/utils"
)

// challengeMarkers are the interstitial phrases checked against the page
// title and the leading body text.
var challengeMarkers = []string{
	"verifying you are human",
	"just a moment",
	"checking your browser",
	"unusual traffic",
	"attention required",
	"enable javascript and cookies",
}

// challengeWidgetSelectors locate the embedded challenge widget and its
// checkbox-like control. Clicks on missing elements are not errors.
var challengeWidgetSelectors = []string{
	`iframe[src*="challenges.cloudflare.com"]`,
	`iframe[src*="turnstile"]`,
	`input[type="checkbox"]`,
}

// bodyProbeLength bounds how much body text participates in detection.
const bodyProbeLength = 500

// ChallengeSolver gates extraction behind anti-bot interstitial handling.
// It drives the Fresh -> Detected -> Solving -> Bypassed|Failed machine with
// a bounded number of remediation attempts.
type ChallengeSolver struct {
	MaxAttempts    int
	SettleDelay    time.Duration
	QuiesceTimeout time.Duration
	logger         utils.Logger
}

// NewChallengeSolver creates a solver with production delays.
func NewChallengeSolver(logger utils.Logger) *ChallengeSolver {
	return &ChallengeSolver{
		MaxAttempts:    3,
		SettleDelay:    3 * time.Second,
		QuiesceTimeout: 10 * time.Second,
		logger:         logger,
	}
}

// Evaluate inspects the page and attempts remediation when an interstitial
// is present. It returns ChallengeBypassed when the page is clean,
// ChallengeFailed when retries are exhausted.
func (s *ChallengeSolver) Evaluate(ctx context.Context, page Page) ChallengeState {
	detected, err := s.detect(ctx, page)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"url":   page.URL(),
			"stage": "challenge-detect",
		}).Warnf("page inspection failed: %v", err)
		return ChallengeFailed
	}
	if !detected {
		return ChallengeBypassed
	}

	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		s.logger.WithFields(map[string]interface{}{
			"url":     page.URL(),
			"attempt": attempt,
		}).Info("challenge detected, attempting remediation")

		s.sleep(ctx, s.SettleDelay)
		for _, selector := range challengeWidgetSelectors {
			// A missing widget is fine; remediation proceeds regardless.
			_ = page.Click(ctx, selector)
		}
		s.sleep(ctx, s.SettleDelay)

		// Quiescence failures are swallowed; the re-check decides.
		if err := page.WaitQuiescence(ctx, s.QuiesceTimeout); err != nil {
			s.logger.WithField("url", page.URL()).Debugf("quiescence wait: %v", err)
		}

		detected, err = s.detect(ctx, page)
		if err == nil && !detected {
			return ChallengeBypassed
		}
	}

	return ChallengeFailed
}

// detect checks the title and the first bodyProbeLength characters of body
// text for interstitial markers.
func (s *ChallengeSolver) detect(ctx context.Context, page Page) (bool, error) {
	title, err := page.Title(ctx)
	if err != nil {
		return false, err
	}
	if ContainsChallengeMarker(title) {
		return true, nil
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return false, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, err
	}
	body := strings.TrimSpace(doc.Find("body").Text())
	if len(body) > bodyProbeLength {
		body = body[:bodyProbeLength]
	}
	return ContainsChallengeMarker(body), nil
}

func (s *ChallengeSolver) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// ContainsChallengeMarker reports whether the text carries a known
// interstitial phrase. The enricher reuses it for response titles.
func ContainsChallengeMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

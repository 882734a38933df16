// internal/scraper/strategies.go
package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/LexScrapexter/internal/utils"
)

// ExtractionStrategy produces canonical records from a rendered listing page.
// A strategy must be fail-soft: any internal parse problem yields an empty
// slice, never an error to the caller.
type ExtractionStrategy interface {
	// Name returns the method label recorded when this strategy wins.
	Name() string

	// Extract returns zero or more canonical records from the document.
	Extract(doc *goquery.Document) []Attorney
}

// ExtractionPipeline runs strategies strictly in order and stops at the
// first one that yields at least one record.
type ExtractionPipeline struct {
	strategies []ExtractionStrategy
	logger     utils.Logger
}

// NewExtractionPipeline creates the default chain: structured metadata,
// embedded script data, DOM heuristics.
func NewExtractionPipeline(logger utils.Logger) *ExtractionPipeline {
	return &ExtractionPipeline{
		strategies: []ExtractionStrategy{
			&StructuredDataStrategy{},
			&ScriptDataStrategy{},
			&DOMStrategy{},
		},
		logger: logger,
	}
}

// Extract runs the chain. It returns the extracted records and the label of
// the winning strategy, or an empty slice and "none" when every strategy
// came up empty.
func (p *ExtractionPipeline) Extract(doc *goquery.Document) ([]Attorney, string) {
	for _, strategy := range p.strategies {
		records := strategy.Extract(doc)
		if len(records) > 0 {
			p.logger.WithFields(map[string]interface{}{
				"method":  strategy.Name(),
				"records": len(records),
			}).Debug("extraction strategy succeeded")
			return records, strategy.Name()
		}
		p.logger.WithField("method", strategy.Name()).Debug("extraction strategy yielded nothing")
	}
	return nil, "none"
}

// resolveLink resolves a possibly relative profile link against the site
// origin. Malformed links pass through untouched.
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	base, err := url.Parse(BaseOrigin)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

var (
	numberTokenRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integerTokenRe = regexp.MustCompile(`\d+`)
)

// firstNumber pulls the first integer or decimal token out of free text.
func firstNumber(text string) (float64, bool) {
	token := numberTokenRe.FindString(text)
	if token == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// firstInteger pulls the first integer token out of free text.
func firstInteger(text string) (int, bool) {
	token := integerTokenRe.FindString(strings.ReplaceAll(text, ",", ""))
	if token == "" {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

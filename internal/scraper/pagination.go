// internal/scraper/pagination.go
package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/LexScrapexter/internal/utils"
)

// nextSelectors locate the "next page" control, tried in order.
var nextSelectors = []string{
	"a[rel='next']",
	"a.pagination-next",
	".pagination .next a",
	"li.next a",
	"a[aria-label='Next']",
}

// PaginationController decides whether a further listing page exists and
// whether the run budget still allows processing it.
type PaginationController struct {
	logger utils.Logger
}

// NewPaginationController creates a controller.
func NewPaginationController(logger utils.Logger) *PaginationController {
	return &PaginationController{logger: logger}
}

// NextPage returns the absolute URL of the next listing page, or "" when no
// usable next control exists. The disabled check is a class-substring
// heuristic and is advisory, not authoritative.
func (p *PaginationController) NextPage(doc *goquery.Document, currentURL string) string {
	for _, selector := range nextSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if isDisabled(sel) {
			p.logger.WithField("url", currentURL).Debug("next control present but disabled")
			return ""
		}
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		next := resolveAgainst(currentURL, href)
		if !strings.HasPrefix(next, "http://") && !strings.HasPrefix(next, "https://") {
			p.logger.WithField("href", href).Debug("next link not scheme-qualified, ignoring")
			return ""
		}
		return next
	}
	return ""
}

// ShouldContinue reports whether the run may request another page: record
// budget not met (zero budget means unbounded) and page ceiling not reached.
func (p *PaginationController) ShouldContinue(budget *RunBudget) bool {
	return budget.HasCapacity() && budget.PagesRemaining()
}

func isDisabled(sel *goquery.Selection) bool {
	if class, ok := sel.Attr("class"); ok && strings.Contains(class, "disabled") {
		return true
	}
	if class, ok := sel.Parent().Attr("class"); ok && strings.Contains(class, "disabled") {
		return true
	}
	if _, ok := sel.Attr("disabled"); ok {
		return true
	}
	return false
}

func resolveAgainst(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	hrefURL, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(hrefURL).String()
}

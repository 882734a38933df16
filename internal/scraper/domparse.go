// internal/scraper/domparse.go
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cardSelectors are tried in order; the first selector matching at least one
// element decides the card set for the page.
var cardSelectors = []string{
	".lawyer-card",
	".attorney-card",
	"[data-lawyer-id]",
	".organic-result",
	".search-result",
	"article.lawyer",
}

// minBioLength filters out short labels masquerading as biography text.
const minBioLength = 50

// domField is one row of the field-extraction table: an ordered list of
// candidate sub-selectors plus the extractor applied to the first candidate
// that produces a value. apply reports whether it took a value, so later
// candidates still get a chance on empty matches.
type domField struct {
	name      string
	selectors []string
	apply     func(sel *goquery.Selection, a *Attorney) bool
}

var domFields = []domField{
	{
		name:      "name",
		selectors: []string{".lawyer-name a", "a.lawyer-name", "h3 a", "h2 a", ".name a", ".name"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			name := strings.TrimSpace(sel.First().Text())
			if href, ok := sel.First().Attr("href"); ok {
				a.ProfileURL = resolveLink(href)
			}
			if name == "" && a.ProfileURL == "" {
				return false
			}
			a.Name = name
			return true
		},
	},
	{
		name:      "rating",
		selectors: []string{".rating", ".review-score", "[class*='rating']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			v, ok := firstNumber(sel.First().Text())
			if !ok {
				return false
			}
			a.Rating = &v
			return true
		},
	},
	{
		name:      "reviewCount",
		selectors: []string{".review-count", "[class*='review']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			n, ok := firstInteger(sel.First().Text())
			if !ok {
				return false
			}
			a.ReviewCount = n
			return true
		},
	},
	{
		name:      "practiceAreas",
		selectors: []string{".practice-areas", ".specialties", "[class*='practice']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			areas := collectTokens(sel.First(), "li, span, a", 0)
			if len(areas) == 0 {
				// Comma-separated text block fallback; short tokens are noise.
				for _, tok := range strings.Split(sel.First().Text(), ",") {
					if tok = strings.TrimSpace(tok); len(tok) > 2 {
						areas = append(areas, tok)
					}
				}
			}
			if len(areas) == 0 {
				return false
			}
			a.PracticeAreas = areas
			return true
		},
	},
	{
		name:      "location",
		selectors: []string{".location", ".address", "[class*='location']", "[class*='address']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			loc := strings.TrimSpace(sel.First().Text())
			if loc == "" {
				return false
			}
			a.Location = loc
			return true
		},
	},
	{
		name:      "phone",
		selectors: []string{"a[href^='tel:']", ".phone", "[class*='phone']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			if href, ok := sel.First().Attr("href"); ok && strings.HasPrefix(href, "tel:") {
				a.Phone = strings.TrimPrefix(href, "tel:")
				return true
			}
			phone := strings.TrimSpace(sel.First().Text())
			if phone == "" {
				return false
			}
			a.Phone = phone
			return true
		},
	},
	{
		name:      "website",
		selectors: []string{".website a[href]", "a.website[href]", "a[class*='website'][href]"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			href, ok := sel.First().Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return false
			}
			a.Website = strings.TrimSpace(href)
			return true
		},
	},
	{
		name:      "yearsLicensed",
		selectors: []string{".licensed", "[class*='licensed']", "[class*='experience']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			n, ok := firstInteger(sel.First().Text())
			if !ok {
				return false
			}
			a.YearsLicensed = &n
			return true
		},
	},
	{
		name:      "barAdmissions",
		selectors: []string{".bar-admissions", "[class*='admission']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			items := collectTokens(sel.First(), "li, span", 1)
			if len(items) == 0 {
				return false
			}
			a.BarAdmissions = items
			return true
		},
	},
	{
		name:      "languages",
		selectors: []string{".languages", "[class*='language']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			items := collectTokens(sel.First(), "li, span", 1)
			if len(items) == 0 {
				return false
			}
			a.Languages = items
			return true
		},
	},
	{
		name:      "bio",
		selectors: []string{".bio", ".description", "[class*='bio']"},
		apply: func(sel *goquery.Selection, a *Attorney) bool {
			text := strings.TrimSpace(sel.First().Text())
			if len(text) <= minBioLength {
				return false
			}
			a.Bio = text
			return true
		},
	},
}

// DOMStrategy parses listing cards with cascading selector heuristics. It is
// the last resort when no machine-readable data exists on the page.
type DOMStrategy struct{}

func (s *DOMStrategy) Name() string { return "dom-parsing" }

func (s *DOMStrategy) Extract(doc *goquery.Document) []Attorney {
	cards := findCards(doc)
	if cards == nil {
		return nil
	}

	var records []Attorney
	cards.Each(func(_ int, card *goquery.Selection) {
		a := Attorney{}
		for _, field := range domFields {
			for _, selector := range field.selectors {
				match := card.Find(selector)
				if match.Length() == 0 {
					continue
				}
				if field.apply(match, &a) {
					break
				}
			}
		}
		// A card without a name or profile link is not a record.
		if a.Name == "" && a.ProfileURL == "" {
			return
		}
		ApplyDefaults(&a)
		records = append(records, a)
	})

	return records
}

func findCards(doc *goquery.Document) *goquery.Selection {
	for _, selector := range cardSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// collectTokens gathers trimmed child texts longer than minLen.
func collectTokens(sel *goquery.Selection, childSelector string, minLen int) []string {
	var out []string
	sel.Find(childSelector).Each(func(_ int, child *goquery.Selection) {
		if text := strings.TrimSpace(child.Text()); len(text) > minLen {
			out = append(out, text)
		}
	})
	return dedupeStrings(out)
}

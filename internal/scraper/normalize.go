// internal/scraper/normalize.go
package scraper

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Preference order per canonical field. The first present non-empty source
// key wins; later keys are only consulted when the earlier ones are absent.
var (
	nameKeys       = []string{"name", "fullName", "full_name", "displayName"}
	profileKeys    = []string{"url", "profileUrl", "profile_url", "link", "href"}
	phoneKeys      = []string{"telephone", "phone", "phoneNumber", "phone_number"}
	emailKeys      = []string{"email", "emailAddress"}
	websiteKeys    = []string{"website", "webSite", "homepage"}
	bioKeys        = []string{"description", "bio", "about"}
	areaListKeys   = []string{"knowsAbout", "practiceAreas", "practice_areas", "specialties"}
	areaSingleKeys = []string{"serviceArea", "areaServed", "practiceArea"}
	admissionKeys  = []string{"barAdmissions", "bar_admissions", "admissions"}
	languageKeys   = []string{"knowsLanguage", "languages", "language"}
	licensedKeys   = []string{"yearsLicensed", "years_licensed", "yearsOfExperience", "experienceYears"}
)

var titleCaser = cases.Title(language.AmericanEnglish)

// NormalizeEntry maps one object-shaped raw entry (structured metadata or
// embedded script data) into the canonical record. It never fails; absent
// fields get their documented defaults.
func NormalizeEntry(entry RawEntry) Attorney {
	a := Attorney{
		Name:          firstString(entry, nameKeys),
		Phone:         firstString(entry, phoneKeys),
		Email:         firstString(entry, emailKeys),
		Website:       firstString(entry, websiteKeys),
		Bio:           firstString(entry, bioKeys),
		ProfileURL:    firstString(entry, profileKeys),
		Location:      normalizeAddress(entry["address"]),
		PracticeAreas: normalizePracticeAreas(entry),
		BarAdmissions: firstStringList(entry, admissionKeys),
		Languages:     firstStringList(entry, languageKeys),
	}

	if agg, ok := entry["aggregateRating"].(map[string]interface{}); ok {
		if v, ok := toFloat(agg["ratingValue"]); ok {
			a.Rating = &v
		}
		if n, ok := toInt(agg["reviewCount"]); ok {
			a.ReviewCount = n
		} else if n, ok := toInt(agg["ratingCount"]); ok {
			a.ReviewCount = n
		}
	} else {
		if v, ok := toFloat(entry["rating"]); ok {
			a.Rating = &v
		}
		if n, ok := toInt(entry["reviewCount"]); ok {
			a.ReviewCount = n
		} else if n, ok := toInt(entry["reviews"]); ok {
			a.ReviewCount = n
		}
	}

	for _, key := range licensedKeys {
		if n, ok := toInt(entry[key]); ok {
			a.YearsLicensed = &n
			break
		}
	}

	ApplyDefaults(&a)
	return a
}

// ApplyDefaults fills the canonical defaults on a record from any source.
// DOM-parsed records pass through here only.
func ApplyDefaults(a *Attorney) {
	if strings.TrimSpace(a.Name) == "" {
		a.Name = "Unknown"
	}
	if a.PracticeAreas == nil {
		a.PracticeAreas = []string{}
	}
	if a.BarAdmissions == nil {
		a.BarAdmissions = []string{}
	}
	if a.Languages == nil {
		a.Languages = []string{}
	}
	a.ProfileURL = resolveLink(a.ProfileURL)
	if a.ScrapedAt.IsZero() {
		a.ScrapedAt = time.Now().UTC()
	}
}

// normalizeAddress accepts either a plain string or a structured postal
// address sub-object and produces the free-form location value.
func normalizeAddress(v interface{}) string {
	switch addr := v.(type) {
	case string:
		return addr
	case map[string]interface{}:
		parts := make([]string, 0, 3)
		// One value per address component; schema.org names win over bare ones.
		for _, aliases := range [][]string{
			{"addressLocality", "locality"},
			{"addressRegion", "region"},
			{"postalCode"},
		} {
			for _, key := range aliases {
				if s, ok := addr[key].(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
					break
				}
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func normalizePracticeAreas(entry RawEntry) []string {
	for _, key := range areaListKeys {
		if list := toStringList(entry[key]); len(list) > 0 {
			out := make([]string, 0, len(list))
			for _, s := range list {
				out = append(out, humanizeArea(s))
			}
			return out
		}
	}
	for _, key := range areaSingleKeys {
		if s, ok := entry[key].(string); ok && strings.TrimSpace(s) != "" {
			return []string{humanizeArea(s)}
		}
	}
	return []string{}
}

// humanizeArea turns slug-style practice labels ("personal-injury") into
// display form ("Personal Injury"). Values with their own casing are kept.
func humanizeArea(s string) string {
	s = strings.TrimSpace(s)
	if s == strings.ToLower(s) && s != "" {
		return titleCaser.String(strings.ReplaceAll(s, "-", " "))
	}
	return s
}

func firstString(entry RawEntry, keys []string) string {
	for _, key := range keys {
		if s, ok := entry[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstStringList(entry RawEntry, keys []string) []string {
	for _, key := range keys {
		if list := toStringList(entry[key]); len(list) > 0 {
			return list
		}
	}
	return nil
}

func toStringList(v interface{}) []string {
	switch val := v.(type) {
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	default:
		return nil
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

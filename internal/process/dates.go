package process

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dayFirstLayouts are tried in order against a cleaned candidate string.
// The source pages are Spanish, so ambiguous numeric dates read day-first.
var dayFirstLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-06",
	"2/1/06",
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// spanishMonths translates month names so the stdlib layouts can parse
// Spanish dates. Full names come before the abbreviations so "marzo" is
// never half-rewritten by "mar".
var spanishMonths = []struct{ es, en string }{
	{"enero", "January"}, {"febrero", "February"}, {"marzo", "March"},
	{"abril", "April"}, {"mayo", "May"}, {"junio", "June"}, {"julio", "July"},
	{"agosto", "August"}, {"septiembre", "September"}, {"octubre", "October"},
	{"noviembre", "November"}, {"diciembre", "December"},
	{"ene", "Jan"}, {"feb", "Feb"}, {"mar", "Mar"}, {"abr", "Apr"},
	{"jun", "Jun"}, {"jul", "Jul"}, {"ago", "Aug"}, {"sep", "Sep"},
	{"oct", "Oct"}, {"nov", "Nov"}, {"dic", "Dec"},
}

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})\b`)
	rangeSplitRe  = regexp.MustCompile(`\s*[–—-]\s*|\s+al?\s+|\s*hasta\s+`)
	deArticleRe   = regexp.MustCompile(`(?i)\s+del?\s+`)
)

// ToSpanishDate reformats a single date string to "dd-mm-yyyy", leaving it
// unchanged when no day-first interpretation parses.
func ToSpanishDate(s string) string {
	t, ok := ParseDayFirst(s)
	if !ok {
		return s
	}
	return t.Format("02-01-2006")
}

// ParseDayFirst parses one date string with day-first semantics.
func ParseDayFirst(s string) (time.Time, bool) {
	candidate := strings.TrimSpace(s)
	if candidate == "" {
		return time.Time{}, false
	}

	// "12 de junio de 2024" → "12 June 2024"
	lowered := deArticleRe.ReplaceAllString(strings.ToLower(candidate), " ")
	for _, m := range spanishMonths {
		lowered = strings.ReplaceAll(lowered, m.es, m.en)
	}

	for _, probe := range []string{candidate, lowered} {
		for _, layout := range dayFirstLayouts {
			if t, err := time.Parse(layout, probe); err == nil {
				return t, true
			}
		}
	}

	if m := numericDateRe.FindStringSubmatch(candidate); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		if t, err := time.Parse("2-1-2006", fmt.Sprintf("%s-%s-%s", m[1], m[2], year)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseRangeStart extracts the start date from a free-form date range such
// as "31-07-2024 – 04-08-2024" or "12 al 14 de julio de 2024".
func ParseRangeStart(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	for _, chunk := range rangeSplitRe.Split(s, -1) {
		if t, ok := ParseDayFirst(chunk); ok {
			return t, true
		}
	}
	if m := numericDateRe.FindString(s); m != "" {
		return ParseDayFirst(m)
	}
	return time.Time{}, false
}

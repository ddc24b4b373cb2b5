// Package textnorm canonicalizes raw strings pulled out of rendered
// FlowAgility markup: Unicode normalization, emoji stripping, whitespace
// collapse and edge trimming. Every other extraction component funnels its
// output through Clean before it reaches a CSV row.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	netHTML "golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// trimSet is the fixed set of edge characters Clean removes.
const trimSet = " \t\r\n-•*·:;"

// emojiRanges covers the pictographic blocks the source pages decorate
// titles and headers with (flags, symbols, dingbats, supplemental emoji).
var emojiRanges = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F800, Hi: 0x1F8FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA00, Hi: 0x1FA6F, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	emojiRemover    = runes.Remove(runes.In(emojiRanges))
	markRemover     = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	tagStripper     = bluemonday.StrictPolicy()
)

// Clean canonicalizes a raw extracted string: NFKC composition, emoji
// removal, horizontal-whitespace collapse and edge trimming. Interior
// newlines survive so callers can still split multi-line blobs. Idempotent.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s, _, _ = transform.String(emojiRemover, s)
	s = horizontalSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, trimSet)
}

// StripDiacritics decomposes s and drops combining marks. Comparison use
// only: display output keeps accents.
func StripDiacritics(s string) string {
	out, _, err := transform.String(markRemover, s)
	if err != nil {
		return s
	}
	return out
}

// FoldKey builds the case- and diacritic-insensitive key used to
// deduplicate names.
func FoldKey(s string) string {
	return strings.ToLower(StripDiacritics(Clean(s)))
}

// Flatten strips residual markup from a raw HTML fragment and cleans the
// remaining text.
func Flatten(fragment string) string {
	return Clean(netHTML.UnescapeString(tagStripper.Sanitize(fragment)))
}

var placeholderRe = regexp.MustCompile(`(?i)(aguardar|por\s+confirmar|tbd|to\s+be\s+confirmed)`)

var headerLabels = map[string]struct{}{
	"nombre": {}, "name": {}, "jueces": {}, "juezes": {}, "jueces:": {}, "juezes:": {},
}

// LooksLikeName reports whether s plausibly is a person's name rather than
// a placeholder, a label, or rendering debris.
func LooksLikeName(s string) bool {
	s = Clean(s)
	if s == "" || placeholderRe.MatchString(s) {
		return false
	}
	if _, ok := headerLabels[strings.ToLower(s)]; ok {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter && len([]rune(s)) >= 3
}

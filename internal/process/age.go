package process

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearsRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*a(?:ño|nios|ños)?`)
	monthsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m(?:es|eses)?`)
)

// EdadToYears converts a free-text age ("2 años 6 meses", "18 meses",
// "3,5") into a year count. The second return is false when nothing in the
// string reads as an age.
func EdadToYears(s string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return 0, false
	}
	text = strings.ReplaceAll(text, ",", ".")

	years, months := 0.0, 0.0
	my := yearsRe.FindStringSubmatch(text)
	mm := monthsRe.FindStringSubmatch(text)
	if my != nil {
		years, _ = strconv.ParseFloat(my[1], 64)
	}
	if mm != nil {
		months, _ = strconv.ParseFloat(mm[1], 64)
	}
	if my != nil || mm != nil {
		return years + months/12.0, true
	}

	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, true
	}
	return 0, false
}

// FormatYears renders a parsed age the way the processed CSV expects:
// trailing zeros dropped, empty when the age never parsed.
func FormatYears(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

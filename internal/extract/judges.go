package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/textnorm"
)

// judgesRe matches the Spanish/Portuguese judges keyword, singular or
// plural ("juez", "jueces", "juezes").
var judgesRe = regexp.MustCompile(`(?i)\bjuece[sz]\b`)

// sectionBoundaryRe marks lines that start a different info section, which
// ends a judge line scan. Stems, not whole words: the pages write
// "Inscripciones", "Localización", "Condiciones".
var sectionBoundaryRe = regexp.MustCompile(`(?i)\b(evento|organizador|localiz|inscrip|condicion|pruebas|prices|precios)`)

// maxScanLines caps how far past the judges keyword a line scan looks.
const maxScanLines = 30

// ExtractJudges recovers the judge names announced anywhere on an event
// page. Three strategies run in priority order and the first one that
// yields anything wins: the info grid, the rules block, and finally the
// whole visible text.
func ExtractJudges(p *Page) []string {
	if names := judgesFromGrid(p); len(names) > 0 {
		return names
	}
	if names := judgesFromRules(p); len(names) > 0 {
		return names
	}
	return dedupeNames(scanJudgeLines(p.Text()))
}

// judgesFromGrid looks for a header cell naming the judges and collects
// the value-styled cells of its enclosing grid.
func judgesFromGrid(p *Page) []string {
	var names []string
	p.doc.Find("div.font-bold.text-sm.border-b").Each(func(_ int, hdr *goquery.Selection) {
		if !judgesRe.MatchString(hdr.Text()) {
			return
		}
		grid := hdr.Closest("div.grid")
		if grid.Length() == 0 {
			return
		}
		grid.Find("div.font-bold.text-sm.text-black").Each(func(_ int, val *goquery.Selection) {
			if t := textnorm.Clean(val.Text()); textnorm.LooksLikeName(t) {
				names = append(names, t)
			}
		})
	})
	return dedupeNames(names)
}

// judgesFromRules inspects blocks tagged as rules content. List items are
// preferred; failing that, the block markup is flattened to text and
// scanned line by line.
func judgesFromRules(p *Page) []string {
	var names []string
	p.doc.Find("div.rules, .rules").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		text := block.Text()
		if !judgesRe.MatchString(text) {
			return true
		}
		block.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := textnorm.Clean(li.Text()); textnorm.LooksLikeName(t) {
				names = append(names, t)
			}
		})
		if len(names) == 0 {
			if raw, err := block.Html(); err == nil {
				text = textnorm.Flatten(raw)
			}
			names = scanJudgeLines(text)
		}
		return len(names) == 0
	})
	return dedupeNames(names)
}

// scanJudgeLines finds the judges keyword in free text and collects
// name-looking lines after it, stopping at the next section. Names stated
// on the keyword line itself ("Jueces: Ana López, Juan Pérez") are split
// on commas, but only when a separator follows the keyword directly; a
// prose line like "Jueces y pistas: información" is not a roster.
func scanJudgeLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if ln := textnorm.Clean(raw); ln != "" {
			lines = append(lines, ln)
		}
	}

	idx := -1
	for i, ln := range lines {
		if judgesRe.MatchString(ln) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	var names []string
	if loc := judgesRe.FindStringIndex(lines[idx]); loc != nil {
		rest := strings.TrimLeft(lines[idx][loc[1]:], " \t")
		if rest != "" && strings.ContainsRune(":;-", rune(rest[0])) {
			for _, part := range strings.Split(strings.TrimLeft(rest, " \t:;-"), ",") {
				if t := textnorm.Clean(part); textnorm.LooksLikeName(t) {
					names = append(names, t)
				}
			}
		}
	}

	end := idx + 1 + maxScanLines
	if end > len(lines) {
		end = len(lines)
	}
	for _, ln := range lines[idx+1 : end] {
		if sectionBoundaryRe.MatchString(ln) {
			break
		}
		if textnorm.LooksLikeName(ln) {
			names = append(names, ln)
		}
	}
	return names
}

// dedupeNames drops duplicates under case- and diacritic-insensitive
// comparison, keeping the first-seen display form and order.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		key := textnorm.FoldKey(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, textnorm.Clean(n))
	}
	return out
}

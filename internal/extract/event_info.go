package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/textnorm"
)

var (
	organizerLineRe = regexp.MustCompile(`(?i)(Organiza|Organizer|Organizador)\s*[:\-]\s*(.+)`)
	ciudadRe        = regexp.MustCompile(`(?i)(Ciudad|City)\s*[:\-]\s*(.+)`)
	paisRe          = regexp.MustCompile(`(?i)(Pa[ií]s|Country)\s*[:\-]\s*(.+)`)
	startDateRe     = regexp.MustCompile(`(?i)(Fecha de inicio|Start date)\s*[:\-]\s*(.+)`)
	endDateRe       = regexp.MustCompile(`(?i)(Fecha de fin|End date)\s*[:\-]\s*(.+)`)
	monthRangeRe    = regexp.MustCompile(`\b(Ene|Feb|Mar|Abr|May|Jun|Jul|Ago|Sep|Oct|Nov|Dic|Jan|Apr|Aug|Dec)\s+\d{1,2}\s*-\s*\d{1,2}\b`)

	federationAbbrRe = regexp.MustCompile(`(?i)\b(FCI|RSCE|RFEC|FED)\b`)
)

// countryTerms recognizes the right-hand side of "City / Country" header
// lines, in the spellings the pages mix.
var countryTerms = map[string]bool{
	"spain": true, "españa": true, "portugal": true, "france": true, "francia": true,
	"italy": true, "italia": true, "germany": true, "alemania": true,
	"belgium": true, "bélgica": true, "belgica": true,
	"netherlands": true, "holanda": true, "países bajos": true, "paises bajos": true,
	"czech republic": true, "república checa": true, "republica checa": true,
	"slovakia": true, "eslovaquia": true, "poland": true, "polonia": true,
	"austria": true, "switzerland": true, "suiza": true,
	"hungary": true, "hungría": true, "hungria": true,
	"romania": true, "rumanía": true, "rumania": true,
	"bulgaria": true, "greece": true, "grecia": true,
	"united kingdom": true, "reino unido": true, "uk": true, "ireland": true, "irlanda": true,
	"norway": true, "noruega": true, "sweden": true, "suecia": true,
	"denmark": true, "dinamarca": true, "finland": true, "finlandia": true,
	"estonia": true, "latvia": true, "lithuania": true, "croatia": true, "croacia": true,
	"slovenia": true, "eslovenia": true, "serbia": true, "bosnia": true, "montenegro": true,
	"north macedonia": true, "macedonia": true, "albania": true,
	"turkey": true, "turquía": true, "turquia": true,
	"usa": true, "estados unidos": true, "canada": true, "canadá": true,
}

// EventInfo recovers the event-level record from a rendered event page.
// Every slot degrades to the "N/D" sentinel rather than failing.
func EventInfo(p *Page) models.Event {
	headers := headerLines(p)
	body := p.Text()

	ev := models.Event{
		EventURL:  p.URL(),
		Title:     models.NotAvailable,
		Organizer: models.NotAvailable,
		Location:  models.NotAvailable,
		Dates:     models.NotAvailable,
	}
	for i := 0; i < len(headers) && i < len(ev.Headers); i++ {
		ev.Headers[i] = headers[i]
	}

	if len(headers) >= 3 && !strings.EqualFold(headers[2], "flowagility") {
		ev.Title = headers[2]
	} else if t := bestTitle(p); t != "" {
		ev.Title = t
	}
	ev.Dates = eventDates(headers, body)
	ev.Location = eventLocation(headers, body)
	ev.Organizer = eventOrganizer(p, headers, body)
	ev.Judges = ExtractJudges(p)

	finishEvent(&ev)
	return ev
}

// NeedsFallback reports whether the participants-list page should be
// consulted to fill gaps left by the event page.
func NeedsFallback(ev *models.Event) bool {
	return ev.Organizer == models.NotAvailable || len(ev.Judges) == 0 || ev.Headers[0] == ""
}

// FillMissing reruns the extractors against an alternate page and fills
// only the slots still carrying sentinels.
func FillMissing(ev *models.Event, p *Page) {
	headers := headerLines(p)
	body := p.Text()

	if ev.Dates == models.NotAvailable {
		ev.Dates = eventDates(headers, body)
	}
	if ev.Location == models.NotAvailable {
		ev.Location = eventLocation(headers, body)
	}
	if ev.Organizer == models.NotAvailable {
		ev.Organizer = eventOrganizer(p, headers, body)
	}
	for i := range ev.Headers {
		if ev.Headers[i] == "" && i < len(headers) {
			ev.Headers[i] = headers[i]
		}
	}
	if len(ev.Judges) == 0 {
		ev.Judges = ExtractJudges(p)
	}
	finishEvent(ev)
}

// finishEvent normalizes the display slots and restores sentinels for
// anything that cleaned down to nothing.
func finishEvent(ev *models.Event) {
	for _, slot := range []*string{&ev.Title, &ev.Organizer, &ev.Location, &ev.Dates} {
		*slot = textnorm.Clean(*slot)
		if *slot == "" {
			*slot = models.NotAvailable
		}
	}
	for i := range ev.Headers {
		ev.Headers[i] = textnorm.Clean(ev.Headers[i])
	}
}

// headerLines reads the first six usable lines of the event header block.
func headerLines(p *Page) []string {
	hdr := p.doc.Find("#event_header")
	if hdr.Length() == 0 {
		return nil
	}
	var lines []string
	for _, raw := range strings.Split(hdr.Text(), "\n") {
		ln := textnorm.Clean(raw)
		if ln == "" || strings.EqualFold(ln, "flowagility") {
			continue
		}
		lines = append(lines, ln)
		if len(lines) == 6 {
			break
		}
	}
	return lines
}

// bestTitle picks the longest heading on the page, then the og:title meta,
// then the document title.
func bestTitle(p *Page) string {
	best := ""
	p.doc.Find("h1, h2, [role='heading']").Each(func(_ int, s *goquery.Selection) {
		t := textnorm.Clean(s.Text())
		if t == "" || strings.EqualFold(t, "flowagility") {
			return
		}
		if len(t) > len(best) {
			best = t
		}
	})
	if best != "" {
		return best
	}
	if meta, ok := p.doc.Find(`meta[property='og:title']`).Attr("content"); ok {
		if t := textnorm.Clean(meta); t != "" && !strings.EqualFold(t, "flowagility") {
			return t
		}
	}
	if t := textnorm.Clean(p.doc.Find("title").First().Text()); t != "" && !strings.EqualFold(t, "flowagility") {
		return t
	}
	return models.NotAvailable
}

func eventDates(headers []string, body string) string {
	if len(headers) > 0 {
		return headers[0]
	}
	ini := startDateRe.FindStringSubmatch(body)
	fin := endDateRe.FindStringSubmatch(body)
	if ini != nil || fin != nil {
		a, b := "", ""
		if ini != nil {
			a = textnorm.Clean(firstLine(ini[2]))
		}
		if fin != nil {
			b = textnorm.Clean(firstLine(fin[2]))
		}
		return strings.Trim(a+" – "+b, " –")
	}
	if m := monthRangeRe.FindString(body); m != "" {
		return textnorm.Clean(m)
	}
	return models.NotAvailable
}

func eventLocation(headers []string, body string) string {
	for _, ln := range headers {
		if !strings.Contains(ln, " / ") || federationAbbrRe.MatchString(ln) {
			continue
		}
		parts := strings.Split(ln, "/")
		right := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		if countryTerms[right] {
			return strings.TrimSpace(ln)
		}
	}
	c, pais := "", ""
	if m := ciudadRe.FindStringSubmatch(body); m != nil {
		c = textnorm.Clean(firstLine(m[2]))
	}
	if m := paisRe.FindStringSubmatch(body); m != nil {
		pais = textnorm.Clean(firstLine(m[2]))
	}
	if c != "" || pais != "" {
		return strings.Trim(c+" / "+pais, " /")
	}
	return models.NotAvailable
}

func eventOrganizer(p *Page, headers []string, body string) string {
	if v := organizerFromGrid(p); v != "" {
		return v
	}
	if m := organizerLineRe.FindStringSubmatch(body); m != nil {
		if v := textnorm.Clean(firstLine(m[2])); v != "" {
			return v
		}
	}
	if len(headers) >= 4 {
		candidate := textnorm.Clean(headers[3])
		if candidate != "" && candidate != headers[0] && candidate != headers[1] && candidate != headers[2] {
			return candidate
		}
	}
	return models.NotAvailable
}

// organizerFromGrid resolves the "Organizador" grid: header cell, then the
// "Nombre" label, then its bold value sibling.
func organizerFromGrid(p *Page) string {
	out := ""
	p.doc.Find("div.font-bold.text-sm.border-b").EachWithBreak(func(_ int, hdr *goquery.Selection) bool {
		t := strings.ToLower(strings.TrimSpace(hdr.Text()))
		if t != "organizador" && t != "organizer" {
			return true
		}
		grid := hdr.Closest("div.grid")
		if grid.Length() == 0 {
			return true
		}
		grid.Find("div.text-gray-500.text-sm").EachWithBreak(func(_ int, lab *goquery.Selection) bool {
			lt := strings.ToLower(strings.TrimSpace(lab.Text()))
			if lt != "nombre" && lt != "name" {
				return true
			}
			val := lab.NextAllFiltered("div.font-bold.text-sm.text-black").First()
			if v := textnorm.Clean(val.Text()); v != "" {
				out = v
				return false
			}
			return true
		})
		return out == ""
	})
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

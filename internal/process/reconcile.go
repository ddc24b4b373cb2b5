// Package process turns the raw scraped datasets into the processed
// participants table: participants joined to their event, ages and dates
// normalized, and the first mangas string classified into canonical
// Grado/Cat/CatExtra codes.
package process

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/category"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/storage"
)

// requiredCols must exist in the participants dataset before processing
// makes sense.
var requiredCols = []string{
	"event_uuid", "event_title", "BinomID", "Dorsal", "Guía", "Perro",
	"Raza", "Edad", "Género", "Altura (cm)", "Licencia", "Club", "Federación",
}

// targetCols is the processed output prefix; the surviving "Fecha i"
// columns follow it.
var targetCols = []string{
	"event_url", "PruebaNom", "Organiza", "Lugar", "Fechas",
	"BinomID", "Dorsal", "Guia", "Perro", "Raza", "Edad", "SexoPerro",
	"AlturaPerro", "Licencia", "Club", "Federacion", "Grado", "Cat", "CatExtra",
}

// Reconcile left-joins participants to events and emits exactly one output
// row per participant row. A row-count discrepancy is a warning, never a
// failure.
func Reconcile(events, participants *storage.Table) (*storage.Table, error) {
	var missing []string
	have := make(map[string]bool, len(participants.Header))
	for _, c := range participants.Header {
		have[c] = true
	}
	for _, c := range requiredCols {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("participants dataset missing columns: %s", strings.Join(missing, ", "))
	}

	// First row per uuid wins; later duplicates are scrape artifacts.
	byUUID := make(map[string]map[string]string, len(events.Rows))
	for _, row := range events.Rows {
		id := row["uuid"]
		if id == "" {
			continue
		}
		if _, ok := byUUID[id]; !ok {
			byUUID[id] = row
		}
	}

	var fechaCols []string
	for i := 1; i <= 6; i++ {
		if c := fmt.Sprintf("Fecha %d", i); have[c] {
			fechaCols = append(fechaCols, c)
		}
	}
	var mangasCols []string
	for _, c := range participants.Header {
		if strings.HasPrefix(c, "Mangas") {
			mangasCols = append(mangasCols, c)
		}
	}

	out := &storage.Table{Header: append(append([]string(nil), targetCols...), fechaCols...)}
	titleFallbacks := 0

	for _, p := range participants.Rows {
		ev := byUUID[p["event_uuid"]]

		title := ev["title"]
		if strings.TrimSpace(title) == "" || strings.TrimSpace(title) == models.NotAvailable {
			title = p["event_title"]
			if title == "" {
				title = models.NotAvailable
			}
			titleFallbacks++
		}

		firstMangas := ""
		for _, c := range mangasCols {
			if p[c] != "" {
				firstMangas = p[c]
				break
			}
		}
		cat := category.Parse(firstMangas, p["Federación"])

		row := map[string]string{
			"event_url":   ev["event_url"],
			"PruebaNom":   title,
			"Organiza":    ev["organizer"],
			"Lugar":       ev["location"],
			"Fechas":      ToSpanishDate(ev["dates"]),
			"BinomID":     p["BinomID"],
			"Dorsal":      p["Dorsal"],
			"Guia":        p["Guía"],
			"Perro":       p["Perro"],
			"Raza":        p["Raza"],
			"Edad":        FormatYears(EdadToYears(p["Edad"])),
			"SexoPerro":   p["Género"],
			"AlturaPerro": p["Altura (cm)"],
			"Licencia":    p["Licencia"],
			"Club":        p["Club"],
			"Federacion":  p["Federación"],
			"Grado":       cat.Grado,
			"Cat":         cat.Cat,
			"CatExtra":    cat.Extra,
		}
		for _, c := range fechaCols {
			row[c] = ToSpanishDate(p[c])
		}
		out.Rows = append(out.Rows, row)
	}

	if titleFallbacks > 0 {
		log.Info("event title resolved from participant rows", "rows", titleFallbacks)
	}
	if len(out.Rows) != len(participants.Rows) {
		log.Warn("processed row count differs from input, writing anyway",
			"got", len(out.Rows), "want", len(participants.Rows))
	}
	return out, nil
}

// Package report renders the "pruebas próximas" summary printed after
// processing: every known event starting within the horizon, ordered by
// start date.
package report

import (
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/process"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/storage"
)

// DefaultHorizonDays bounds how far ahead the report looks.
const DefaultHorizonDays = 60

type upcomingEvent struct {
	start    time.Time
	title    string
	location string
	url      string
}

// Upcoming writes the upcoming-events table to w and returns how many
// events fell inside the horizon.
func Upcoming(w io.Writer, events *storage.Table, now time.Time, horizonDays int) int {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := now.Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, horizonDays)

	seen := make(map[string]bool)
	var rows []upcomingEvent
	for _, row := range events.Rows {
		key := row["event_url"]
		if key == "" {
			key = row["title"]
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		start, ok := process.ParseRangeStart(row["dates"])
		if !ok || start.Before(today) || start.After(horizon) {
			continue
		}
		title := row["title"]
		if title == "" {
			title = models.NotAvailable
		}
		location := row["location"]
		if location == "" {
			location = models.NotAvailable
		}
		rows = append(rows, upcomingEvent{start: start, title: title, location: location, url: row["event_url"]})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].start.Before(rows[j].start) })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Pruebas próximas (%d días)", horizonDays)
	t.AppendHeader(table.Row{"Fecha", "Prueba", "Lugar", "URL"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.start.Format("02-01-2006"), r.title, r.location, r.url})
	}
	t.Render()
	return len(rows)
}

package storage

import (
	"fmt"
	"strings"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
)

// EventsHeader is the column order of the events dataset.
var EventsHeader = []string{
	"uuid", "event_url", "title", "organizer", "location", "dates",
	"header_1", "header_2", "header_3", "header_4", "header_5", "header_6",
	"judges",
}

// participantsBase is the fixed prefix of the participants dataset; the
// schedule triplets "Día i / Fecha i / Mangas i" follow it up to the
// widest row observed.
var participantsBase = []string{
	"event_uuid", "event_title", "participants_url", "BinomID", "Dorsal",
	"Guía", "Perro", "Raza", "Edad", "Género", "Altura (cm)",
	"Nombre de Pedigree", "País", "Licencia", "Club", "Federación", "Equipo",
}

// EventRow flattens an event for the events CSV.
func EventRow(ev models.Event) map[string]string {
	judges := models.NotAvailable
	if len(ev.Judges) > 0 {
		judges = strings.Join(ev.Judges, " | ")
	}
	row := map[string]string{
		"uuid":      ev.UUID,
		"event_url": ev.EventURL,
		"title":     ev.Title,
		"organizer": ev.Organizer,
		"location":  ev.Location,
		"dates":     ev.Dates,
		"judges":    judges,
	}
	for i, h := range ev.Headers {
		row[fmt.Sprintf("header_%d", i+1)] = h
	}
	return row
}

// ParticipantRow flattens a participant, appending one Día/Fecha/Mangas
// triplet per schedule entry in source order.
func ParticipantRow(p models.Participant) map[string]string {
	row := map[string]string{
		"event_uuid":         p.EventUUID,
		"event_title":        p.EventTitle,
		"participants_url":   p.ParticipantsURL,
		"BinomID":            p.BinomID,
		"Dorsal":             p.Dorsal,
		"Guía":               p.Guia,
		"Perro":              p.Perro,
		"Raza":               p.Raza,
		"Edad":               p.Edad,
		"Género":             p.Genero,
		"Altura (cm)":        p.Altura,
		"Nombre de Pedigree": p.Pedigree,
		"País":               p.Pais,
		"Licencia":           p.Licencia,
		"Club":               p.Club,
		"Federación":         p.Federacion,
		"Equipo":             p.Equipo,
	}
	for i, e := range p.Schedule {
		row[fmt.Sprintf("Día %d", i+1)] = e.Day
		row[fmt.Sprintf("Fecha %d", i+1)] = e.Fecha
		row[fmt.Sprintf("Mangas %d", i+1)] = e.Mangas
	}
	return row
}

// ParticipantsHeader builds the participants header wide enough for every
// row's schedule.
func ParticipantsHeader(rows []map[string]string) []string {
	header := append([]string(nil), participantsBase...)
	for i := 1; i <= MaxScheduleIndex(rows); i++ {
		header = append(header,
			fmt.Sprintf("Día %d", i),
			fmt.Sprintf("Fecha %d", i),
			fmt.Sprintf("Mangas %d", i))
	}
	return header
}

package models

// Sentinels used across the pipeline. NotAvailable marks event-level data
// no strategy could recover; FieldMissing marks a participant field absent
// from the rendered block. Both are distinct from the empty string, which
// only appears in serialized output for columns a row never had.
const (
	NotAvailable = "N/D"
	FieldMissing = "No disponible"
)

// Event holds the metadata scraped from one event page. One instance per
// distinct UUID; immutable once extraction completes.
type Event struct {
	UUID      string
	EventURL  string
	Title     string
	Organizer string
	Location  string
	Dates     string
	Headers   [6]string
	Judges    []string
}

// ScheduleEntry is one day of a participant's schedule. Source order is
// significant: entry N feeds the "Día N"/"Fecha N"/"Mangas N" columns.
type ScheduleEntry struct {
	Day    string
	Fecha  string
	Mangas string
}

// Participant is one handler-dog pair registered in an event.
type Participant struct {
	EventUUID       string
	EventTitle      string
	ParticipantsURL string
	BinomID         string
	Dorsal          string
	Guia            string
	Perro           string
	Raza            string
	Edad            string
	Genero          string
	Altura          string
	Pedigree        string
	Pais            string
	Licencia        string
	Club            string
	Federacion      string
	Equipo          string
	Schedule        []ScheduleEntry
}

// HasData reports whether any non-schedule field carries a real value.
// Rows where every field is missing are treated as render noise.
func (p *Participant) HasData() bool {
	for _, v := range []string{
		p.Dorsal, p.Guia, p.Perro, p.Raza, p.Edad, p.Genero, p.Altura,
		p.Pedigree, p.Pais, p.Licencia, p.Club, p.Federacion, p.Equipo,
	} {
		if v != "" && v != FieldMissing {
			return true
		}
	}
	return false
}

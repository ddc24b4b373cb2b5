package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/storage"
)

func participantsFixture(rows []map[string]string) *storage.Table {
	return &storage.Table{
		Header: []string{
			"event_uuid", "event_title", "participants_url", "BinomID", "Dorsal",
			"Guía", "Perro", "Raza", "Edad", "Género", "Altura (cm)",
			"Nombre de Pedigree", "País", "Licencia", "Club", "Federación", "Equipo",
			"Día 1", "Fecha 1", "Mangas 1",
		},
		Rows: rows,
	}
}

func eventsFixture() *storage.Table {
	return &storage.Table{
		Header: storage.EventsHeader,
		Rows: []map[string]string{
			{
				"uuid":      "ev-1",
				"event_url": "https://www.flowagility.com/zone/events/ev-1",
				"title":     "Trofeo de Verano",
				"organizer": "Club Agility Madrid",
				"location":  "Madrid / España",
				"dates":     "01/06/2024",
			},
		},
	}
}

func TestReconcileJoinsAndClassifies(t *testing.T) {
	parts := participantsFixture([]map[string]string{
		{
			"event_uuid": "ev-1", "event_title": "Trofeo de Verano",
			"BinomID": "b-1", "Dorsal": "123", "Guía": "Ana López",
			"Perro": "Nuba", "Raza": "Border Collie",
			"Edad": "2 años 6 meses", "Género": "Hembra", "Altura (cm)": "48",
			"Licencia": "L-1", "Club": "CAM", "Federación": "RSCE",
			"Fecha 1": "1 de junio de 2024", "Mangas 1": "G1 / M",
		},
	})

	out, err := Reconcile(eventsFixture(), parts)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)

	row := out.Rows[0]
	assert.Equal(t, "Trofeo de Verano", row["PruebaNom"])
	assert.Equal(t, "Club Agility Madrid", row["Organiza"])
	assert.Equal(t, "01-06-2024", row["Fechas"])
	assert.Equal(t, "2.5", row["Edad"])
	assert.Equal(t, "G1", row["Grado"])
	assert.Equal(t, "M", row["Cat"])
	assert.Equal(t, "", row["CatExtra"])
	assert.Equal(t, "01-06-2024", row["Fecha 1"])
	assert.Equal(t, "Ana López", row["Guia"])
	assert.Equal(t, "Hembra", row["SexoPerro"])
}

func TestReconcileTitleFallback(t *testing.T) {
	parts := participantsFixture([]map[string]string{
		{"event_uuid": "ev-missing", "event_title": "Título local", "BinomID": "b-2"},
		{"event_uuid": "ev-missing", "BinomID": "b-3"},
	})

	out, err := Reconcile(eventsFixture(), parts)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Título local", out.Rows[0]["PruebaNom"])
	assert.Equal(t, "N/D", out.Rows[1]["PruebaNom"])
}

func TestReconcileRowCountPreserved(t *testing.T) {
	var rows []map[string]string
	for i := 0; i < 25; i++ {
		rows = append(rows, map[string]string{"event_uuid": "ev-1", "BinomID": "b"})
	}
	out, err := Reconcile(eventsFixture(), participantsFixture(rows))
	require.NoError(t, err)
	assert.Len(t, out.Rows, len(rows))
}

func TestReconcileMissingColumns(t *testing.T) {
	parts := &storage.Table{Header: []string{"event_uuid", "BinomID"}}
	_, err := Reconcile(eventsFixture(), parts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dorsal")
}

func TestEdadToYears(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2 años 6 meses", 2.5, true},
		{"2 años", 2, true},
		{"18 meses", 1.5, true},
		{"3,5", 3.5, true},
		{"4", 4, true},
		{"desconocida", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := EdadToYears(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
	}
}

func TestToSpanishDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"01/06/2024", "01-06-2024"},
		{"1-6-2024", "01-06-2024"},
		{"2024-06-01", "01-06-2024"},
		{"1 de junio de 2024", "01-06-2024"},
		{"12 jun 2024", "12-06-2024"},
		{"sin fecha", "sin fecha"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToSpanishDate(tt.in), "input %q", tt.in)
	}
}

func TestParseRangeStart(t *testing.T) {
	start, ok := ParseRangeStart("31-07-2024 – 04-08-2024")
	require.True(t, ok)
	assert.Equal(t, "31-07-2024", start.Format("02-01-2006"))

	start, ok = ParseRangeStart("12 al 14 de julio de 2024")
	require.True(t, ok)
	assert.Equal(t, "12-07-2024", start.Format("02-01-2006"))

	_, ok = ParseRangeStart("nunca")
	assert.False(t, ok)
}

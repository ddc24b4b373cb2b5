package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestNextFreePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "participantes_procesado_2024-06-01.csv")

	assert.Equal(t, path, NextFreePath(path))

	touch(t, path)
	v2 := filepath.Join(dir, "participantes_procesado_2024-06-01_v2.csv")
	assert.Equal(t, v2, NextFreePath(path))

	touch(t, v2)
	assert.Equal(t, filepath.Join(dir, "participantes_procesado_2024-06-01_v3.csv"), NextFreePath(path))
}

func TestResolveLatestPrefersToday(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "events_2024-05-20.csv")
	today := filepath.Join(dir, "events_2024-06-01.csv")
	touch(t, old)
	touch(t, today)

	got, err := ResolveLatest([]string{dir}, "events_2024-06-01*.csv", "events_*.csv")
	require.NoError(t, err)
	assert.Equal(t, today, got)
}

func TestResolveLatestFallsBackToNewestByDate(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "events_2024-05-10.csv")
	newer := filepath.Join(dir, "events_2024-05-20.csv")
	touch(t, newer)
	touch(t, older)

	got, err := ResolveLatest([]string{dir}, "events_2024-06-01*.csv", "events_*.csv")
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestResolveLatestNoMatches(t *testing.T) {
	dir := t.TempDir()
	_, err := ResolveLatest([]string{dir}, "events_2024-06-01*.csv", "events_*.csv")
	assert.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events_2024-06-01.csv")
	in := &Table{
		Header: []string{"uuid", "title", "judges"},
		Rows: []map[string]string{
			{"uuid": "u1", "title": "Prueba Ágil, Madrid", "judges": "Ana López | João Silva"},
			{"uuid": "u2", "title": "Otra"},
		},
	}
	require.NoError(t, WriteTable(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, utf8BOM, raw[:3])

	out, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, in.Header, out.Header)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Prueba Ágil, Madrid", out.Rows[0]["title"])
	assert.Equal(t, "Ana López | João Silva", out.Rows[0]["judges"])
	assert.Equal(t, "", out.Rows[1]["judges"])
}

func TestParticipantRowAndHeader(t *testing.T) {
	p := models.Participant{
		EventUUID: "u1",
		BinomID:   "12345",
		Guia:      "María Pérez",
		Perro:     "Nuba",
		Schedule: []models.ScheduleEntry{
			{Day: "Día 1", Fecha: "01-06-2024", Mangas: "G1 / M"},
			{Day: "Día 2", Fecha: "02-06-2024", Mangas: "G1 / M"},
		},
	}
	row := ParticipantRow(p)
	assert.Equal(t, "María Pérez", row["Guía"])
	assert.Equal(t, "G1 / M", row["Mangas 2"])

	header := ParticipantsHeader([]map[string]string{row})
	assert.Equal(t, 2, MaxScheduleIndex([]map[string]string{row}))
	assert.Contains(t, header, "Fecha 2")
	assert.NotContains(t, header, "Fecha 3")
	assert.Equal(t, "event_uuid", header[0])
}

func TestEventRowJoinsJudges(t *testing.T) {
	ev := models.Event{UUID: "u1", Title: "Prueba"}
	assert.Equal(t, models.NotAvailable, EventRow(ev)["judges"])

	ev.Judges = []string{"Ana López", "Juan Pérez"}
	assert.Equal(t, "Ana López | Juan Pérez", EventRow(ev)["judges"])
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eventPage = `
<html><head><title>FlowAgility</title></head><body>
<div id="event_header">
  <div>12-14 Jul 2024</div>
  <div>FlowAgility</div>
  <div>RSCE / España</div>
  <div>Trofeo de Verano</div>
  <div>Club Agility Madrid</div>
  <div>Madrid / España</div>
  <div>Pista de césped</div>
</div>
<div class="grid">
  <div class="font-bold text-sm border-b">Organizador</div>
  <div class="text-gray-500 text-sm">Nombre</div>
  <div class="font-bold text-sm text-black">Club Agility Madrid</div>
</div>
<div class="grid">
  <div class="font-bold text-sm border-b">Jueces</div>
  <div class="font-bold text-sm text-black">Ana López</div>
</div>
</body></html>`

func TestEventInfo(t *testing.T) {
	ev := EventInfo(mustPage(t, eventPage))

	assert.Equal(t, "Trofeo de Verano", ev.Title)
	assert.Equal(t, "12-14 Jul 2024", ev.Dates)
	assert.Equal(t, "Club Agility Madrid", ev.Organizer)
	// The RSCE line is skipped, the city/country header line wins.
	assert.Equal(t, "Madrid / España", ev.Location)
	assert.Equal(t, []string{"Ana López"}, ev.Judges)
	assert.Equal(t, "12-14 Jul 2024", ev.Headers[0])
	assert.Equal(t, "Pista de césped", ev.Headers[5])
	assert.False(t, NeedsFallback(&ev))
}

func TestEventInfoSentinelsOnEmptyPage(t *testing.T) {
	ev := EventInfo(mustPage(t, `<html><head><title>FlowAgility</title></head><body></body></html>`))

	assert.Equal(t, "N/D", ev.Title)
	assert.Equal(t, "N/D", ev.Organizer)
	assert.Equal(t, "N/D", ev.Location)
	assert.Equal(t, "N/D", ev.Dates)
	assert.Empty(t, ev.Judges)
	assert.True(t, NeedsFallback(&ev))
}

func TestEventInfoTitleFallbackToHeading(t *testing.T) {
	ev := EventInfo(mustPage(t, `
<html><body>
<h1>FlowAgility</h1>
<h1>Open Internacional de Agility</h1>
</body></html>`))

	assert.Equal(t, "Open Internacional de Agility", ev.Title)
}

func TestEventInfoBodyTextFallbacks(t *testing.T) {
	ev := EventInfo(mustPage(t, `
<html><body>
<div>Organiza: Club Canino Norte</div>
<div>Ciudad: Oviedo</div>
<div>País: España</div>
<div>Fecha de inicio: 01-06-2024</div>
<div>Fecha de fin: 02-06-2024</div>
</body></html>`))

	assert.Equal(t, "Club Canino Norte", ev.Organizer)
	assert.Equal(t, "Oviedo / España", ev.Location)
	assert.Equal(t, "01-06-2024 – 02-06-2024", ev.Dates)
}

func TestFillMissingOnlyTouchesSentinels(t *testing.T) {
	ev := EventInfo(mustPage(t, `<html><body></body></html>`))
	ev.Title = "Prueba fijada"

	FillMissing(&ev, mustPage(t, eventPage))

	assert.Equal(t, "Prueba fijada", ev.Title)
	assert.Equal(t, "Club Agility Madrid", ev.Organizer)
	assert.Equal(t, []string{"Ana López"}, ev.Judges)
}

func TestBookingIDs(t *testing.T) {
	p := mustPage(t, `
<html><body>
<div phx-click="booking_details_show" phx-value-booking_id="b-1"></div>
<div phx-click="booking_details_show" phx-value-booking_id="b-2"></div>
<div phx-click="booking_details_show" phx-value-booking_id="b-1"></div>
<div phx-click="other"></div>
</body></html>`)

	assert.Equal(t, []string{"b-1", "b-2"}, p.BookingIDs())
}

package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/config"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/extract"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/storage"
)

// Scraper drives the full extraction pass: event discovery, per-event
// info, per-participant field mapping. Budget overruns skip the current
// unit and move on; only login and listing failures abort the run.
type Scraper struct {
	cfg    config.Config
	client *Client
}

func NewScraper(cfg config.Config) (*Scraper, error) {
	cl, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Scraper{cfg: cfg, client: cl}, nil
}

// Run scrapes every discovered event and returns the events and
// participants datasets ready for storage.WriteTable.
func (s *Scraper) Run(ctx context.Context) (*storage.Table, *storage.Table, error) {
	if err := s.client.Login(ctx); err != nil {
		return nil, nil, err
	}

	listing, err := s.client.FetchPage(ctx, s.cfg.BaseURL+"/zone/events")
	if err != nil {
		return nil, nil, fmt.Errorf("loading events listing: %w", err)
	}
	refs := s.client.EventRefs(listing)
	log.Info("events discovered", "count", len(refs))

	events := &storage.Table{Header: storage.EventsHeader}
	var participantRows []map[string]string

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		ev, parts, err := s.scrapeEvent(ctx, ref)
		if err != nil {
			log.Warn("event skipped", "uuid", ref.UUID, "err", err)
			continue
		}
		events.Rows = append(events.Rows, storage.EventRow(ev))
		for _, p := range parts {
			participantRows = append(participantRows, storage.ParticipantRow(p))
		}
	}

	participants := &storage.Table{
		Header: storage.ParticipantsHeader(participantRows),
		Rows:   participantRows,
	}
	return events, participants, nil
}

func (s *Scraper) scrapeEvent(ctx context.Context, ref EventRef) (models.Event, []models.Participant, error) {
	evCtx, cancel := context.WithTimeout(ctx, s.cfg.MaxEventDuration)
	defer cancel()

	page, err := s.client.FetchPage(evCtx, ref.EventURL)
	if err != nil {
		return models.Event{}, nil, err
	}

	ev := extract.EventInfo(page)
	ev.UUID = ref.UUID
	ev.EventURL = ref.EventURL

	if ref.ParticipantsURL == "" {
		return ev, nil, nil
	}

	plist, err := s.client.FetchPage(evCtx, ref.ParticipantsURL)
	if err != nil {
		log.Warn("participants page unavailable", "uuid", ref.UUID, "err", err)
		return ev, nil, nil
	}
	if extract.NeedsFallback(&ev) {
		extract.FillMissing(&ev, plist)
	}

	parts := s.scrapeParticipants(evCtx, &ev, ref, plist)
	return ev, parts, nil
}

func (s *Scraper) scrapeParticipants(ctx context.Context, ev *models.Event, ref EventRef, plist *extract.Page) []models.Participant {
	ids := plist.BookingIDs()
	log.Info("participants found", "uuid", ref.UUID, "count", len(ids))

	var out []models.Participant
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			log.Warn("event budget exhausted", "uuid", ref.UUID, "done", len(out), "total", len(ids))
			break
		}
		p, ok := s.mapOne(ctx, ev, ref, plist, id)
		if !ok {
			log.Warn("participant dropped, no recoverable data", "uuid", ref.UUID, "booking", id)
			continue
		}
		out = append(out, p)
	}
	return out
}

// mapOne maps a single participant block under its own timeout. Mapping
// is local work; the timeout guards against pathological markup.
func (s *Scraper) mapOne(ctx context.Context, ev *models.Event, ref EventRef, plist *extract.Page, id string) (models.Participant, bool) {
	pCtx, cancel := context.WithTimeout(ctx, s.cfg.PerParticipantTimeout)
	defer cancel()

	type mapped struct {
		p  models.Participant
		ok bool
	}
	ch := make(chan mapped, 1)
	go func() {
		root := plist.ParticipantBlock(id)
		if root == nil {
			ch <- mapped{}
			return
		}
		res := extract.MapParticipant(root)
		p := buildParticipant(ev, ref, id, res)
		ch <- mapped{p: p, ok: p.HasData()}
	}()

	select {
	case m := <-ch:
		return m.p, m.ok
	case <-pCtx.Done():
		return models.Participant{}, false
	}
}

// buildParticipant assembles the record, preferring the accented label
// spellings and falling back to the variants some pages use.
func buildParticipant(ev *models.Event, ref EventRef, id string, res extract.MapResult) models.Participant {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := res.Fields[k]; v != "" {
				return v
			}
		}
		return models.FieldMissing
	}

	return models.Participant{
		EventUUID:       ev.UUID,
		EventTitle:      ev.Title,
		ParticipantsURL: ref.ParticipantsURL,
		BinomID:         id,
		Dorsal:          pick("Dorsal"),
		Guia:            pick("Guía", "Guia"),
		Perro:           pick("Perro"),
		Raza:            pick("Raza"),
		Edad:            pick("Edad"),
		Genero:          pick("Género", "Genero"),
		Altura:          pick("Altura (cm)", "Altura"),
		Pedigree:        pick("Nombre de Pedigree", "Nombre de Pedrigree"),
		Pais:            pick("País", "Pais"),
		Licencia:        pick("Licencia"),
		Club:            pick("Club"),
		Federacion:      pick("Federación", "Federacion"),
		Equipo:          pick("Equipo"),
		Schedule:        res.Schedule,
	}
}

// ScrapeTimestamp names output files for today's run.
func ScrapeTimestamp(now time.Time) string {
	return now.Format("2006-01-02")
}

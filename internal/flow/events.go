package flow

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/extract"
)

var eventHrefRe = regexp.MustCompile(`/zone/events/([0-9a-fA-F-]{36})(?:/|$)`)

// EventRef is one discovered event: its canonical page URL and, when the
// listing links one, its participants page.
type EventRef struct {
	UUID            string
	EventURL        string
	ParticipantsURL string
}

// EventRefs walks every anchor on the events listing and groups hrefs by
// event UUID. Identifiers that do not parse as UUIDs are skipped; order
// of first appearance is kept.
func (cl *Client) EventRefs(p *extract.Page) []EventRef {
	byID := make(map[string]*EventRef)
	var order []string

	p.Doc().Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		m := eventHrefRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id := strings.ToLower(m[1])
		if _, err := uuid.Parse(id); err != nil {
			return
		}
		ref, ok := byID[id]
		if !ok {
			ref = &EventRef{UUID: id, EventURL: cl.absURL("/zone/events/" + id)}
			byID[id] = ref
			order = append(order, id)
		}
		if strings.Contains(href, "participants_list") && ref.ParticipantsURL == "" {
			ref.ParticipantsURL = cl.absURL(href)
		}
	})

	out := make([]EventRef, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

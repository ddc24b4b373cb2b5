package extract

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/models"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/textnorm"
)

// MapResult is the flat outcome of mapping one participant block.
type MapResult struct {
	Fields   map[string]string
	Schedule []models.ScheduleEntry
}

// FieldMapper turns a participant subtree into labeled fields plus an
// ordered per-day schedule. Two implementations exist: StructuralMapper
// walks the tree with day-grouping state, PositionalMapper pairs styled
// nodes by index and is kept behaviorally independent so the fallback can
// be trusted on its own.
type FieldMapper interface {
	Map(root *html.Node) (MapResult, error)
}

// simpleFieldLabels is the allow-list of participant field names, with the
// spelling variants the pages actually use.
var simpleFieldLabels = map[string]bool{
	"Dorsal": true, "Guía": true, "Guia": true, "Perro": true, "Raza": true,
	"Edad": true, "Género": true, "Genero": true,
	"Altura (cm)": true, "Altura": true,
	"Nombre de Pedigree": true, "Nombre de Pedrigree": true,
	"País": true, "Pais": true, "Licencia": true, "Equipo": true,
	"Club": true, "Federación": true, "Federacion": true,
}

// Node roles in the rendered participant block. Day headers are either
// underlined separators or bold top-margin rows; labels are the muted
// small text; values are the bold small text.
func isHeaderNode(n *html.Node) bool {
	return hasClasses(n, "border-b", "border-gray-400") ||
		(hasClasses(n, "font-bold", "text-sm") && hasClassPrefix(n, "mt-"))
}

func isLabelNode(n *html.Node) bool {
	return hasClasses(n, "text-gray-500", "text-sm")
}

func isValueNode(n *html.Node) bool {
	return hasClasses(n, "font-bold", "text-sm")
}

// nextValueNode scans up to eight following element siblings for the
// nearest value-styled node. The bound keeps the structural strategy from
// pairing a label with a value that belongs to a distant section.
func nextValueNode(n *html.Node) *html.Node {
	cur := n
	for i := 0; i < 8; i++ {
		cur = nextElementSibling(cur)
		if cur == nil {
			return nil
		}
		if isValueNode(cur) {
			return cur
		}
	}
	return nil
}

// followingValueNode is the unbounded variant used by the positional
// strategy, which pairs by document order rather than proximity.
func followingValueNode(n *html.Node) *html.Node {
	for cur := nextElementSibling(n); cur != nil; cur = nextElementSibling(cur) {
		if isValueNode(cur) {
			return cur
		}
	}
	return nil
}

// StructuralMapper is the primary strategy: a depth-first traversal that
// classifies every element as header, label or value and keeps the current
// day as explicit traversal state.
type StructuralMapper struct{}

// pendingEntry buffers a schedule date/mangas pair until both slots have
// been seen, at which point it is emitted under the current day.
type pendingEntry struct {
	fecha, mangas       string
	hasFecha, hasMangas bool
}

func (s *StructuralMapper) Map(root *html.Node) (res MapResult, err error) {
	if root == nil || root.Type != html.ElementNode {
		return res, errors.New("structural mapper: no participant subtree")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("structural mapper: %v", r)
		}
	}()

	res.Fields = make(map[string]string)
	currentDay := ""
	var pending pendingEntry

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case isHeaderNode(n):
				if t := nodeText(n); t != "" {
					currentDay = t
				}
			case isLabelNode(n):
				label := nodeText(n)
				value := nodeText(nextValueNode(n))

				lower := strings.ToLower(label)
				switch {
				case strings.HasPrefix(lower, "fecha"):
					pending.fecha, pending.hasFecha = value, true
				case strings.HasPrefix(lower, "mangas"):
					pending.mangas, pending.hasMangas = value, true
				case simpleFieldLabels[label] && value != "" && res.Fields[label] == "":
					res.Fields[label] = value
				}

				if pending.hasFecha && pending.hasMangas {
					res.Schedule = append(res.Schedule, models.ScheduleEntry{
						Day:    currentDay,
						Fecha:  pending.fecha,
						Mangas: pending.mangas,
					})
					pending = pendingEntry{}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	normalizeResult(&res)
	return res, nil
}

// PositionalMapper is the resilience fallback: labels and values are
// paired strictly by index, and schedule entries come from the first two
// value siblings after each day header. Less precise, never structural.
type PositionalMapper struct{}

func (pm *PositionalMapper) Map(root *html.Node) (MapResult, error) {
	res := MapResult{Fields: make(map[string]string)}
	if root == nil {
		return res, nil
	}

	var labels, values, headers []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case isLabelNode(n):
				labels = append(labels, n)
			case isValueNode(n):
				values = append(values, n)
			}
			if hasClasses(n, "border-b", "border-gray-400") {
				headers = append(headers, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for i, lab := range labels {
		if i >= len(values) {
			break
		}
		lt := textnorm.Clean(nodeText(lab))
		vt := textnorm.Clean(nodeText(values[i]))
		if lt != "" && vt != "" && res.Fields[lt] == "" {
			res.Fields[lt] = vt
		}
	}

	for _, h := range headers {
		first := followingValueNode(h)
		var second *html.Node
		if first != nil {
			second = followingValueNode(first)
		}
		res.Schedule = append(res.Schedule, models.ScheduleEntry{
			Day:    textnorm.Clean(nodeText(h)),
			Fecha:  textnorm.Clean(nodeText(first)),
			Mangas: textnorm.Clean(nodeText(second)),
		})
	}
	return res, nil
}

// MapParticipant runs the structural strategy and falls back to the
// positional one when it cannot execute.
func MapParticipant(root *html.Node) MapResult {
	structural := &StructuralMapper{}
	if res, err := structural.Map(root); err == nil {
		return res
	}
	res, _ := (&PositionalMapper{}).Map(root)
	return res
}

// normalizeResult funnels every mapped value through the text normalizer.
func normalizeResult(res *MapResult) {
	for k, v := range res.Fields {
		res.Fields[k] = textnorm.Clean(v)
	}
	for i, e := range res.Schedule {
		res.Schedule[i] = models.ScheduleEntry{
			Day:    textnorm.Clean(e.Day),
			Fecha:  textnorm.Clean(e.Fecha),
			Mangas: textnorm.Clean(e.Mangas),
		}
	}
}

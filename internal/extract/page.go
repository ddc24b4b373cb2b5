package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page wraps one rendered document. Extractors only ever see this handle,
// so the same strategies run against live fetches and test fixtures alike.
type Page struct {
	doc *goquery.Document
	url string
}

// NewPage parses rendered markup into a Page.
func NewPage(r io.Reader, url string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", url, err)
	}
	return &Page{doc: doc, url: url}, nil
}

// URL returns the address the page was rendered from.
func (p *Page) URL() string { return p.url }

// Doc exposes the underlying document for selector queries.
func (p *Page) Doc() *goquery.Document { return p.doc }

// Text returns the page's visible text.
func (p *Page) Text() string {
	return p.doc.Find("body").Text()
}

// ParticipantBlock locates the expanded details container for one booking
// id, or nil when the block never rendered.
func (p *Page) ParticipantBlock(id string) *html.Node {
	sel := p.doc.Find("#" + id)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// BookingIDs collects the participant toggle ids in document order,
// deduplicated.
func (p *Page) BookingIDs() []string {
	seen := make(map[string]bool)
	var out []string
	p.doc.Find(`[phx-click='booking_details_show']`).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("phx-value-booking_id")
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	})
	return out
}

// classTokens splits a node's class attribute into tokens.
func classTokens(n *html.Node) []string {
	if n == nil {
		return nil
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}

// hasClasses reports whether the node carries every listed class token.
func hasClasses(n *html.Node, tokens ...string) bool {
	set := make(map[string]bool)
	for _, t := range classTokens(n) {
		set[t] = true
	}
	for _, t := range tokens {
		if !set[t] {
			return false
		}
	}
	return true
}

// hasClassPrefix reports whether any class token starts with prefix.
func hasClassPrefix(n *html.Node, prefix string) bool {
	for _, t := range classTokens(n) {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// nodeText concatenates the text content under n, trimmed.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// nextElementSibling skips text and comment nodes.
func nextElementSibling(n *html.Node) *html.Node {
	for cur := n.NextSibling; cur != nil; cur = cur.NextSibling {
		if cur.Type == html.ElementNode {
			return cur
		}
	}
	return nil
}

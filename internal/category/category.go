// Package category classifies free-text "mangas" (heat/class) labels into
// the fixed (Grado, Cat, CatExtra) taxonomy. Real inputs mix free text,
// slash-delimited triplets and federation-prefixed codes, so parsing is a
// cascade ordered from bare tokens down to federation-guided splitting;
// each step only fills slots still empty.
package category

import (
	"regexp"
	"strings"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/textnorm"
)

// Category is the canonical classification of one mangas string. Empty
// string means "unclassified", never an unrecognized token.
type Category struct {
	Grado string
	Cat   string
	Extra string
}

var (
	delimRe     = regexp.MustCompile(`[|,;]+`)
	parenRe     = regexp.MustCompile(`\(([^)]+)\)`)
	heightRe    = regexp.MustCompile(`\b(20|30|40|50|60)\b`)
	slashPartRe = regexp.MustCompile(`^\s*([^/()]+)?\s*/\s*([^(]+?)\s*(?:\(([^)]+)\))?\s*$`)
	nonLetterRe = regexp.MustCompile(`[^A-ZÑ ]+`)
)

// Parse maps one mangas string plus a federation hint to canonical codes.
// All three slots default to empty.
func Parse(mangas, federation string) Category {
	var c Category

	txt := strings.ToUpper(textnorm.StripDiacritics(mangas))
	txt = delimRe.ReplaceAllString(txt, " ")

	var parens []string
	for _, m := range parenRe.FindAllStringSubmatch(txt, -1) {
		parens = append(parens, m[1])
	}

	// Bare height tokens beat every size synonym.
	if m := heightRe.FindStringSubmatch(txt); m != nil {
		c.Cat = m[1]
	}
	if c.Cat == "" {
		c.Cat = matchFirst(catRules, txt)
	}

	for _, src := range append([]string{txt}, parens...) {
		if c.Extra = matchFirst(extraRules, src); c.Extra != "" {
			break
		}
	}

	c.Grado = matchFirst(gradoRules, txt)

	if strings.Contains(txt, "/") && (c.Grado == "" || (c.Cat == "" && c.Extra == "")) {
		refineBySlash(&c, txt)
	}

	fed := strings.ToUpper(strings.TrimSpace(textnorm.StripDiacritics(federation)))
	if strings.HasPrefix(fed, "FED") && strings.Contains(txt, "/") {
		refineByFederation(&c, txt, parens)
	}

	if _, ok := validGrado[c.Grado]; !ok {
		c.Grado = ""
	}
	if _, ok := validCat[c.Cat]; !ok {
		c.Cat = ""
	}
	if _, ok := validExtra[c.Extra]; !ok {
		c.Extra = ""
	}
	return c
}

// refineBySlash splits "GRADO / CAT (EXTRA)" style inputs on the first
// slash and re-matches each segment against its own axis.
func refineBySlash(c *Category, txt string) {
	m := slashPartRe.FindStringSubmatch(txt)
	if m == nil {
		return
	}
	before := strings.TrimSpace(m[1])
	after := strings.TrimSpace(m[2])
	inParen := strings.TrimSpace(m[3])

	if c.Grado == "" {
		c.Grado = matchFirst(gradoRules, before)
		if c.Grado == "" {
			if _, ok := validGrado[before]; ok {
				c.Grado = before
			}
		}
	}

	if c.Cat == "" {
		if h := heightRe.FindStringSubmatch(after); h != nil {
			c.Cat = h[1]
		} else {
			c.Cat = matchFirst(catRules, after)
		}
		if c.Cat == "" {
			if _, ok := validCat[after]; ok {
				c.Cat = after
			}
		}
	}

	if c.Extra == "" && inParen != "" {
		c.Extra = matchFirst(extraRules, inParen)
		if c.Extra == "" {
			if _, ok := validExtra[inParen]; ok {
				c.Extra = inParen
			}
		}
	}
}

// refineByFederation handles federation-prefixed codes ("FED / GRADO 2 -
// 40"): everything after the first slash is mined for a grade (letters
// only), a height or size token, and an extra code from the parenthesized
// fragments.
func refineByFederation(c *Category, txt string, parens []string) {
	parts := strings.SplitN(txt, "/", 2)
	if len(parts) < 2 {
		return
	}
	after := parts[1]
	letters := strings.TrimSpace(nonLetterRe.ReplaceAllString(after, " "))

	if c.Grado == "" && letters != "" {
		c.Grado = matchFirst(gradoRules, letters)
		if c.Grado == "" {
			if _, ok := validGrado[letters]; ok {
				c.Grado = letters
			}
		}
	}

	if c.Cat == "" {
		if h := heightRe.FindStringSubmatch(after); h != nil {
			c.Cat = h[1]
		} else {
			c.Cat = matchFirst(catRules, after)
		}
	}

	if c.Extra == "" {
		for _, src := range parens {
			if c.Extra = matchFirst(extraRules, src); c.Extra != "" {
				break
			}
		}
	}
}

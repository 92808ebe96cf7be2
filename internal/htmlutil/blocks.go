package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InfoboxRow is one labelled row from an encyclopedia-style infobox table.
type InfoboxRow struct {
	Label string
	Value string
}

// InfoboxRows extracts th/td pairs from tables whose class list includes
// "infobox". Cell text keeps newline separation between child elements so
// multi-person cells can be split downstream.
func InfoboxRows(doc *html.Node) []InfoboxRow {
	var rows []InfoboxRow
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Table || !hasClass(n, "infobox") {
			return true
		}
		walk(n, func(tr *html.Node) bool {
			if tr.Type != html.ElementNode || tr.DataAtom != atom.Tr {
				return true
			}
			var th, td *html.Node
			for c := tr.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.DataAtom {
				case atom.Th:
					if th == nil {
						th = c
					}
				case atom.Td:
					if td == nil {
						td = c
					}
				}
			}
			if th != nil && td != nil {
				rows = append(rows, InfoboxRow{
					Label: strings.TrimSpace(text(th)),
					Value: lineText(td),
				})
			}
			return false
		})
		return false
	})
	return rows
}

// Card is a block-level chunk of the page that may describe one person:
// its headings, flattened text, and outbound links.
type Card struct {
	Headings []string
	Text     string
	Links    []Anchor
}

// cardElements are the block containers scanned for person cards.
var cardElements = map[atom.Atom]struct{}{
	atom.Article: {},
	atom.Li:      {},
	atom.Section: {},
	atom.Div:     {},
}

// Cards returns candidate person blocks: card-shaped elements with at
// least minTextLen characters of visible text. Nested containers each
// produce their own card; the caller deduplicates people, not cards.
func Cards(doc *html.Node, minTextLen int) []Card {
	var out []Card
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if _, ok := cardElements[n.DataAtom]; !ok {
			return true
		}
		t := text(n)
		if len(t) < minTextLen {
			return true
		}
		card := Card{Text: t}
		walk(n, func(c *html.Node) bool {
			if c.Type != html.ElementNode {
				return true
			}
			switch c.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				if h := strings.TrimSpace(text(c)); h != "" {
					card.Headings = append(card.Headings, h)
				}
				return false
			case atom.A:
				if href := attr(c, "href"); href != "" {
					card.Links = append(card.Links, Anchor{Href: href, Text: strings.TrimSpace(text(c))})
				}
			}
			return true
		})
		out = append(out, card)
		return true
	})
	return out
}

// lineText flattens a subtree keeping newlines between block children,
// so "Jane Doe\n(CEO)" survives as two lines.
func lineText(n *html.Node) string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode {
			if _, skip := skippedElements[c.DataAtom]; skip {
				return false
			}
			switch c.DataAtom {
			case atom.Br, atom.Li, atom.Div, atom.P:
				flush()
			}
		}
		if c.Type == html.TextNode {
			t := strings.TrimSpace(c.Data)
			if t != "" {
				if cur.Len() > 0 {
					cur.WriteByte(' ')
				}
				cur.WriteString(t)
			}
		}
		return true
	})
	flush()
	return strings.Join(lines, "\n")
}

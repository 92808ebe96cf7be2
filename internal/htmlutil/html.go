// Package htmlutil provides the DOM primitives the extractors share:
// visible-text flattening, anchor and tel: link collection, JSON-LD
// organization blocks, infobox rows, and card-shaped block scanning.
package htmlutil

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skippedElements never contribute visible text.
var skippedElements = map[atom.Atom]struct{}{
	atom.Script:   {},
	atom.Style:    {},
	atom.Noscript: {},
	atom.Svg:      {},
	atom.Template: {},
}

// Parse parses an HTML document. The tokenizer is error-tolerant; a nil
// error does not mean the markup was valid.
func Parse(body []byte) (*html.Node, error) {
	return html.Parse(strings.NewReader(string(body)))
}

// Title returns the document's <title> text, trimmed.
func Title(doc *html.Node) string {
	var title string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = strings.TrimSpace(text(n))
			return false
		}
		return true
	})
	return title
}

// FirstHeading returns the text of the first h1 (falling back to h2),
// used to gate encyclopedia pages on the brand token.
func FirstHeading(doc *html.Node) string {
	for _, a := range []atom.Atom{atom.H1, atom.H2} {
		var found string
		walk(doc, func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.DataAtom == a {
				found = strings.TrimSpace(text(n))
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// VisibleText flattens the document to space-joined visible text, skipping
// script/style/svg/noscript subtrees.
func VisibleText(doc *html.Node) string {
	var b strings.Builder
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.DataAtom]; skip {
				return false
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		return true
	})
	return b.String()
}

// Anchor is one hyperlink with its resolved target and visible text.
type Anchor struct {
	Href string
	Text string
}

// Anchors collects all anchor tags, resolving relative hrefs against base.
// tel:, mailto:, and javascript: targets are excluded; use TelHrefs for
// phone links.
func Anchors(doc *html.Node, base *url.URL) []Anchor {
	var out []Anchor
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			return true
		}
		href := attr(n, "href")
		if href == "" {
			return true
		}
		low := strings.ToLower(href)
		if strings.HasPrefix(low, "tel:") || strings.HasPrefix(low, "mailto:") || strings.HasPrefix(low, "javascript:") {
			return true
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		out = append(out, Anchor{Href: href, Text: strings.TrimSpace(text(n))})
		return true
	})
	return out
}

// TelHrefs returns the raw numbers from tel: links, in document order.
// Many sites expose their phone number only this way.
func TelHrefs(doc *html.Node) []string {
	var out []string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			href := attr(n, "href")
			if strings.HasPrefix(strings.ToLower(href), "tel:") {
				if num := strings.TrimSpace(href[4:]); num != "" {
					out = append(out, num)
				}
			}
		}
		return true
	})
	return out
}

// FeedLinks returns hrefs of <link rel="alternate"> feed hints, resolved
// against base.
func FeedLinks(doc *html.Node, base *url.URL) []string {
	var out []string
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Link {
			return true
		}
		typ := strings.ToLower(attr(n, "type"))
		if !strings.Contains(typ, "rss") && !strings.Contains(typ, "atom") {
			return true
		}
		href := attr(n, "href")
		if href == "" {
			return true
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		out = append(out, href)
		return true
	})
	return out
}

// walk visits nodes depth-first; returning false from fn prunes the subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// text flattens a subtree to space-joined text, skipping hidden elements.
func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode {
			if _, skip := skippedElements[c.DataAtom]; skip {
				return false
			}
		}
		if c.Type == html.TextNode {
			t := strings.TrimSpace(c.Data)
			if t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

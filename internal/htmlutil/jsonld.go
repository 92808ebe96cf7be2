package htmlutil

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Organization is the flattened view of an embedded JSON-LD entity: the
// fields the contact and social extractors care about.
type Organization struct {
	SameAs    []string
	Telephone string
	Email     string
	Address   string
}

// addressFieldOrder is the schema.org PostalAddress rendering order.
var addressFieldOrder = []string{
	"streetAddress", "addressLocality", "addressRegion", "postalCode", "addressCountry",
}

// JSONLDOrganizations extracts organization-shaped records from the
// document's ld+json script blocks. Malformed blocks are skipped; the
// function never fails.
func JSONLDOrganizations(doc *html.Node) []Organization {
	var out []Organization
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Script {
			return true
		}
		if !strings.Contains(strings.ToLower(attr(n, "type")), "ld+json") {
			return true
		}
		var raw any
		if err := json.Unmarshal([]byte(scriptText(n)), &raw); err != nil {
			return true
		}
		collectOrgs(raw, &out)
		return true
	})
	return out
}

// scriptText concatenates a script element's direct text children. The
// generic text flattener skips script subtrees, so the payload must be
// read off the node itself.
func scriptText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// collectOrgs walks a decoded JSON-LD value, accumulating any object
// carrying organization-ish fields. @graph arrays and nesting are handled
// by recursing into every object and array.
func collectOrgs(v any, out *[]Organization) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			collectOrgs(item, out)
		}
	case map[string]any:
		org := orgFromMap(val)
		if len(org.SameAs) > 0 || org.Telephone != "" || org.Email != "" || org.Address != "" {
			*out = append(*out, org)
		}
		for key, child := range val {
			// address/contactPoint were already consumed by orgFromMap.
			if key == "address" || key == "contactPoint" || key == "sameAs" {
				continue
			}
			collectOrgs(child, out)
		}
	}
}

func orgFromMap(m map[string]any) Organization {
	var org Organization

	switch same := m["sameAs"].(type) {
	case string:
		org.SameAs = []string{same}
	case []any:
		for _, s := range same {
			if str, ok := s.(string); ok && str != "" {
				org.SameAs = append(org.SameAs, str)
			}
		}
	}

	if tel, ok := m["telephone"].(string); ok {
		org.Telephone = tel
	}
	if org.Telephone == "" {
		if cp, ok := m["contactPoint"].(map[string]any); ok {
			if tel, ok := cp["telephone"].(string); ok {
				org.Telephone = tel
			}
		}
	}

	if email, ok := m["email"].(string); ok {
		org.Email = email
	}

	switch addr := m["address"].(type) {
	case string:
		org.Address = strings.TrimSpace(addr)
	case map[string]any:
		var parts []string
		for _, field := range addressFieldOrder {
			if s, ok := addr[field].(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		org.Address = strings.Join(parts, ", ")
	}

	return org
}

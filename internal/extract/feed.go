package extract

import (
	"encoding/xml"

	"github.com/rotisserie/eris"
)

// feedEntry is one syndicated item, RSS or Atom.
type feedEntry struct {
	Title     string
	Link      string
	Published string
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Items   []struct {
		Title   string `xml:"title"`
		Link    string `xml:"link"`
		PubDate string `xml:"pubDate"`
	} `xml:"channel>item"`
}

type atomFeed struct {
	XMLName xml.Name `xml:"feed"`
	Entries []struct {
		Title string `xml:"title"`
		Links []struct {
			Rel  string `xml:"rel,attr"`
			Href string `xml:"href,attr"`
		} `xml:"link"`
		Updated   string `xml:"updated"`
		Published string `xml:"published"`
	} `xml:"entry"`
}

// parseFeed decodes an RSS or Atom document into entries in document
// order. It tries RSS first, then Atom.
func parseFeed(data []byte) ([]feedEntry, error) {
	var rss rssFeed
	if err := xml.Unmarshal(data, &rss); err == nil && len(rss.Items) > 0 {
		entries := make([]feedEntry, 0, len(rss.Items))
		for _, it := range rss.Items {
			entries = append(entries, feedEntry{Title: it.Title, Link: it.Link, Published: it.PubDate})
		}
		return entries, nil
	}

	var atom atomFeed
	if err := xml.Unmarshal(data, &atom); err != nil {
		return nil, eris.Wrap(err, "extract: parse feed")
	}
	entries := make([]feedEntry, 0, len(atom.Entries))
	for _, en := range atom.Entries {
		link := ""
		for _, l := range en.Links {
			if l.Rel == "" || l.Rel == "alternate" {
				link = l.Href
				break
			}
		}
		published := en.Published
		if published == "" {
			published = en.Updated
		}
		entries = append(entries, feedEntry{Title: en.Title, Link: link, Published: published})
	}
	if len(entries) == 0 {
		return nil, eris.New("extract: feed has no entries")
	}
	return entries, nil
}

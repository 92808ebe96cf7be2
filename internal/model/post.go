package model

import "strings"

// MaxPosts bounds the recent-activity list on a profile.
const MaxPosts = 5

// PlaceholderTitle is the title of the synthetic post substituted when no
// activity was found. The placeholder keeps the list schema-valid.
const PlaceholderTitle = "No Posts to Show"

// Post is one recent-activity item: a blog/feed entry or a news hit.
type Post struct {
	Source      string `json:"source,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Published   string `json:"published,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// PlaceholderPost returns the single entry standing in for "no data found".
func PlaceholderPost() Post {
	return Post{Title: PlaceholderTitle, Placeholder: true}
}

// SanitizePosts keeps entries with both title and URL, deduplicates by URL,
// caps the list at MaxPosts, and substitutes the placeholder when nothing
// survives.
func SanitizePosts(in []Post) []Post {
	out := make([]Post, 0, len(in))
	seen := make(map[string]struct{})
	for _, p := range in {
		p.Title = strings.TrimSpace(p.Title)
		p.URL = strings.TrimSpace(p.URL)
		if p.Title == "" || p.URL == "" {
			continue
		}
		if _, ok := seen[p.URL]; ok {
			continue
		}
		seen[p.URL] = struct{}{}
		p.Placeholder = false
		out = append(out, p)
		if len(out) == MaxPosts {
			break
		}
	}
	if len(out) == 0 {
		return []Post{PlaceholderPost()}
	}
	return out
}

// Package model defines the typed records that flow between the extractors
// and the profile builder. Normalization and deduplication happen at
// construction so call sites never re-implement the rules.
package model

// Profile is the aggregate returned for a single company lookup. It is
// built fresh per request and never persisted.
type Profile struct {
	Company     string      `json:"company,omitempty"`
	Domain      string      `json:"domain,omitempty"`
	Website     string      `json:"website,omitempty"`
	Socials     SocialLinks `json:"socials"`
	Contacts    ContactSet  `json:"contacts"`
	Executives  []Executive `json:"executives"`
	Summary     string      `json:"summary"`
	RecentPosts []Post      `json:"recent_posts"`
	Category    string      `json:"category"`
	GeneratedAt string      `json:"generated_at"`
	LatencyMS   int64       `json:"latency_ms"`
}

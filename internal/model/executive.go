package model

import (
	"sort"
	"strings"
)

// MaxExecutives bounds the officer list on a profile.
const MaxExecutives = 12

// Executive is one company officer with a seniority rank used for ordering.
type Executive struct {
	Name       string `json:"name"`
	JobTitle   string `json:"job_title,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
	Rank       int    `json:"rank"`
}

// RankTitle maps a job title to its seniority rank. Lower is more senior.
func RankTitle(title string) int {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "ceo"):
		return 0
	case strings.Contains(t, "chief"):
		return 1
	case strings.Contains(t, "president"):
		return 2
	case containsAny(t, "cfo", "cto", "coo", "cmo", "cio"):
		return 3
	case containsAny(t, "chair", "board", "director"):
		return 4
	case containsAny(t, "vp", "svp", "evp"):
		return 5
	case strings.Contains(t, "founder"):
		return 6
	default:
		return 7
	}
}

// SortExecutives deduplicates by case-insensitive (name, title), assigns
// ranks, sorts ascending by rank preserving discovery order within a rank,
// and caps the list at MaxExecutives.
func SortExecutives(in []Executive) []Executive {
	out := make([]Executive, 0, len(in))
	seen := make(map[string]struct{})
	for _, e := range in {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name) + "\x00" + strings.ToLower(strings.TrimSpace(e.JobTitle))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		e.Name = name
		e.Rank = RankTitle(e.JobTitle)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	if len(out) > MaxExecutives {
		out = out[:MaxExecutives]
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/model"
)

// Summary word bounds mirror the profile's short-overview format.
const (
	summaryMinWords = 120
	summaryMaxWords = 150
)

// Summarizer produces the profile's prose overview from recent posts,
// or a neutral company description when no posts were found.
type Summarizer struct {
	ai AI
}

// NewSummarizer wires the summarizer to its AI collaborator.
func NewSummarizer(ai AI) *Summarizer {
	return &Summarizer{ai: ai}
}

// Summarize builds the summary material from post titles when real
// posts exist, otherwise falls back to an overview prompt. Returns ""
// when the AI call fails.
func (s *Summarizer) Summarize(ctx context.Context, company, domain string, posts []model.Post) string {
	subject := firstNonEmpty(company, domain)
	if subject == "" {
		return ""
	}

	var material string
	if titles := postTitles(posts); len(titles) > 0 {
		material = "Summarize the following recent items about " + subject +
			". Focus on official product or feature announcements, partnerships, or financial updates. Avoid unrelated celebrity news.\n\n- " +
			strings.Join(titles, "\n- ")
	} else {
		material = "Provide a neutral overview of " + subject +
			": what it does, products and services, market position, and very recent developments if any."
	}

	out, err := s.ai.Summarize(ctx, material, summaryMinWords, summaryMaxWords)
	if err != nil {
		zap.L().Debug("extract: summarize failed", zap.String("subject", subject), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(out)
}

// postTitles returns the non-placeholder post titles.
func postTitles(posts []model.Post) []string {
	var titles []string
	for _, p := range posts {
		if p.Placeholder || p.Title == "" {
			continue
		}
		titles = append(titles, p.Title)
	}
	return titles
}

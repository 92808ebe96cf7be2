package extract

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/sells-group/profile-cli/internal/model"
)

func TestClassifier_RuleTableFirstMatchWins(t *testing.T) {
	ai := &stubAI{label: "Finance"}
	c := NewClassifier(ai)

	got := c.Classify(context.Background(), "Acme Software", "acme.com", model.SocialLinks{})

	assert.Equal(t, "Tech", got)
	assert.Empty(t, ai.labels, "rule match never reaches the AI")
}

func TestClassifier_PlatformKeysCountAsSignal(t *testing.T) {
	socials := model.NewSocialLinks("", map[string]string{
		model.PlatformYouTube: "https://youtube.com/@acme",
	})
	// "youtube" itself matches no rule; the platform key word "youtube"
	// contains no keyword either, so this exercises the AI fallback path.
	c := NewClassifier(&stubAI{label: "Retail"})

	got := c.Classify(context.Background(), "Blank Co", "blank.example", socials)
	assert.Equal(t, "Retail", got)
}

func TestClassifier_AIFallback(t *testing.T) {
	tests := []struct {
		name  string
		ai    *stubAI
		want  string
	}{
		{"on-list answer kept", &stubAI{label: "Finance"}, "Finance"},
		{"off-list answer collapses", &stubAI{label: "Purple"}, "Other"},
		{"empty answer collapses", &stubAI{label: ""}, "Other"},
		{"error collapses", &stubAI{err: eris.New("api down")}, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(tt.ai)
			got := c.Classify(context.Background(), "Unmatched Name", "unmatched.example", model.SocialLinks{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_AIReceivesFullLabelSet(t *testing.T) {
	ai := &stubAI{label: "Other"}
	NewClassifier(ai).Classify(context.Background(), "Unmatched Name", "unmatched.example", model.SocialLinks{})

	assert.Contains(t, ai.labels, "Tech")
	assert.Contains(t, ai.labels, "Manufacturing")
	assert.Contains(t, ai.labels, CategoryOther)
}

func TestSummarizer_FromPostTitles(t *testing.T) {
	ai := &stubAI{summary: "Acme had a busy quarter."}
	posts := []model.Post{
		{Title: "Acme launches widgets", URL: "https://acme.com/a"},
		{Title: "Acme partners with Example", URL: "https://acme.com/b"},
	}

	got := NewSummarizer(ai).Summarize(context.Background(), "Acme", "acme.com", posts)

	assert.Equal(t, "Acme had a busy quarter.", got)
	assert.Contains(t, ai.material, "Acme launches widgets")
	assert.Contains(t, ai.material, "Acme partners with Example")
}

func TestSummarizer_OverviewWhenNoPosts(t *testing.T) {
	ai := &stubAI{summary: "Acme makes widgets."}

	got := NewSummarizer(ai).Summarize(context.Background(), "", "acme.com", []model.Post{model.PlaceholderPost()})

	assert.Equal(t, "Acme makes widgets.", got)
	assert.Contains(t, ai.material, "neutral overview of acme.com")
}

func TestSummarizer_Degrades(t *testing.T) {
	s := NewSummarizer(&stubAI{err: eris.New("api down")})
	assert.Empty(t, s.Summarize(context.Background(), "Acme", "", nil))

	s = NewSummarizer(&stubAI{summary: "ignored"})
	assert.Empty(t, s.Summarize(context.Background(), "", "", nil), "no subject, no call")
}

package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/model"
)

// CategoryOther is the catch-all label for companies no rule or
// classification answer covers.
const CategoryOther = "Other"

// categoryRule pairs a label with the keywords that imply it.
type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules is the ordered keyword table; first match wins.
var categoryRules = []categoryRule{
	{"Tech", []string{"software", "saas", "ai", "cloud", "tech", "it", "data", "developer", "app", "platform", "streaming", "music"}},
	{"Retail", []string{"store", "shop", "retail", "ecommerce", "fashion", "apparel"}},
	{"Health", []string{"health", "clinic", "medical", "pharma", "biotech", "hospital", "wellness"}},
	{"Finance", []string{"bank", "fintech", "trading", "investment", "insurance", "accounting"}},
	{"Education", []string{"school", "university", "academy", "education", "edtech", "training"}},
	{"Hospitality", []string{"hotel", "restaurant", "cafe", "resort", "hospitality", "food"}},
	{"Real Estate", []string{"real estate", "property", "realtor", "housing"}},
	{"Manufacturing", []string{"manufactur", "factory", "industrial", "automation", "hardware"}},
}

// categoryLabels is the fixed label set handed to the AI fallback.
var categoryLabels = func() []string {
	labels := make([]string, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		labels = append(labels, r.label)
	}
	return append(labels, CategoryOther)
}()

// Classifier assigns a single business category: keyword rules first,
// AI single-label classification when no rule fires.
type Classifier struct {
	ai AI
}

// NewClassifier wires the classifier to its AI collaborator.
func NewClassifier(ai AI) *Classifier {
	return &Classifier{ai: ai}
}

// Classify tests the lowercased name, domain, and social platform keys
// against the rule table, then delegates to the AI constrained to the
// fixed label set. Any failure or off-list answer collapses to Other.
func (c *Classifier) Classify(ctx context.Context, company, domain string, socials model.SocialLinks) string {
	parts := []string{strings.ToLower(company), strings.ToLower(domain)}
	for plat := range socials.Links {
		parts = append(parts, plat)
	}
	text := strings.Join(parts, " ")

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.label
			}
		}
	}

	label, err := c.ai.ClassifyLabel(ctx, "Company: "+company+" (domain "+domain+")", categoryLabels)
	if err != nil {
		zap.L().Debug("extract: classification failed", zap.String("company", company), zap.Error(err))
		return CategoryOther
	}
	for _, l := range categoryLabels {
		if strings.EqualFold(label, l) {
			return l
		}
	}
	return CategoryOther
}

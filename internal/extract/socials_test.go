package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/pkg/serper"
)

func TestSocialExtractor_HomepageAnchors(t *testing.T) {
	homepage := `<html><body>
		<a href="https://twitter.com/acme">Twitter</a>
		<a href="https://twitter.com/acme/status/12345">A tweet</a>
		<a href="https://instagram.com/coolbrandfan">Fan page</a>
		<a href="https://instagram.com/acme">Instagram</a>
		<a href="https://facebook.com/acmecorp/">Facebook</a>
	</body></html>`
	fetch := &stubFetch{pages: map[string]string{"https://acme.com": homepage}}

	socials := NewSocialExtractor(&stubSearch{}, fetch).Extract(context.Background(), "", "acme.com")

	assert.Equal(t, "https://acme.com", socials.Website)
	assert.Equal(t, "https://twitter.com/acme", socials.Links[model.PlatformTwitter], "permalink excluded, profile kept")
	assert.Equal(t, "https://instagram.com/acme", socials.Links[model.PlatformInstagram], "exact brand handle outranks earlier candidate")
	assert.Equal(t, "https://facebook.com/acmecorp", socials.Links[model.PlatformFacebook], "trailing slash dropped")
	assert.NotContains(t, socials.Links, model.PlatformYouTube)
}

func TestSocialExtractor_JSONLDSameAs(t *testing.T) {
	homepage := `<html><head><script type="application/ld+json">
		{"@type":"Organization","sameAs":["https://www.linkedin.com/company/acme","https://youtube.com/@acme"]}
	</script></head></html>`
	fetch := &stubFetch{pages: map[string]string{"https://acme.com": homepage}}

	socials := NewSocialExtractor(&stubSearch{}, fetch).Extract(context.Background(), "", "acme.com")

	assert.Equal(t, "https://www.linkedin.com/company/acme", socials.Links[model.PlatformLinkedIn])
	assert.Equal(t, "https://youtube.com/@acme", socials.Links[model.PlatformYouTube])
}

func TestSocialExtractor_WebsiteOverwriteRequiresDomainMatch(t *testing.T) {
	search := &stubSearch{organic: map[string][]serper.OrganicResult{
		"official site": {
			{Link: "https://acme.example-reseller.com/acme"},
			{Link: "https://www.acme.com/home?ref=partner"},
		},
	}}

	socials := NewSocialExtractor(search, &stubFetch{}).Extract(context.Background(), "Acme", "acme.com")

	assert.Equal(t, "https://www.acme.com/home", socials.Website,
		"only a host ending with the known domain may replace the seed")
}

func TestSocialExtractor_RegionalConventionSynthesis(t *testing.T) {
	search := &stubSearch{kg: &serper.KnowledgeGraph{
		Title:      "Acme GmbH",
		Attributes: map[string]string{"Instagram": "https://instagram.com/acme.de"},
	}}

	socials := NewSocialExtractor(search, &stubFetch{}).Extract(context.Background(), "", "acme.de")

	assert.Equal(t, "https://instagram.com/acme.de", socials.Links[model.PlatformInstagram], "found candidate is never overwritten")
	assert.Equal(t, "https://x.com/acme_de", socials.Links[model.PlatformTwitter])
	assert.Equal(t, "https://youtube.com/@acme_de", socials.Links[model.PlatformYouTube])
	assert.Len(t, socials.Links, 5)

	assert.Contains(t, search.locales, "de", "domain locale tried first")
	assert.Contains(t, search.locales, "us", "default locale retried on empty results")
}

func TestHandleFromURL(t *testing.T) {
	assert.Equal(t, "acme", handleFromURL("https://linkedin.com/company/Acme", model.PlatformLinkedIn))
	assert.Equal(t, "acme", handleFromURL("https://youtube.com/@acme", model.PlatformYouTube))
	assert.Equal(t, "acme", handleFromURL("https://x.com/acme", model.PlatformTwitter))
	assert.Equal(t, "", handleFromURL("https://x.com", model.PlatformTwitter))
}

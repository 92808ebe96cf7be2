package extract

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/htmlutil"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/normalize"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// platformHosts classifies a URL's host into a platform key.
var platformHosts = map[string]string{
	"instagram.com": model.PlatformInstagram,
	"facebook.com":  model.PlatformFacebook,
	"linkedin.com":  model.PlatformLinkedIn,
	"x.com":         model.PlatformTwitter,
	"twitter.com":   model.PlatformTwitter,
	"youtube.com":   model.PlatformYouTube,
}

// noisySubpaths mark permalinks and non-profile pages that never
// identify a company account.
var noisySubpaths = []string{
	"/status", "/with_replies", "/watch", "/reel", "/video",
	"/photos", "/about", "/life", "/careers", "/jobs",
}

// searchHostForPlatform is the host used in site-scoped platform queries.
var searchHostForPlatform = map[string]string{
	model.PlatformLinkedIn:  "linkedin.com/company",
	model.PlatformTwitter:   "x.com",
	model.PlatformInstagram: "instagram.com",
	model.PlatformFacebook:  "facebook.com",
	model.PlatformYouTube:   "youtube.com",
}

// regionHandleFormats are the naming conventions regional brand accounts
// follow; used to synthesize a guessed handle when a platform came up
// empty for a non-default region.
var regionHandleFormats = map[string]string{
	"de": "_de",
	"fr": "_fr",
	"gb": "_uk",
	"jp": "_jp",
	"au": "_au",
	"in": "_in",
	"br": "brasil",
}

// guessedProfileURL builds the platform profile URL for a handle.
var guessedProfileURL = map[string]string{
	model.PlatformInstagram: "https://instagram.com/",
	model.PlatformFacebook:  "https://facebook.com/",
	model.PlatformTwitter:   "https://x.com/",
	model.PlatformYouTube:   "https://youtube.com/@",
	model.PlatformLinkedIn:  "https://linkedin.com/company/",
}

// Candidate score weights per the handle/brand relationship.
const (
	scoreHandleEqualsBrand = 6
	scoreHandlePrefix      = 4
	scoreHandleContains    = 3
	scoreRegionToken       = 2
	scoreNoisePenalty      = -3
)

// SocialExtractor resolves the canonical website and per-platform
// social profile URLs for a company.
type SocialExtractor struct {
	search Searcher
	fetch  fetcher.Fetcher
}

// NewSocialExtractor wires a social extractor to its collaborators.
func NewSocialExtractor(search Searcher, fetch fetcher.Fetcher) *SocialExtractor {
	return &SocialExtractor{search: search, fetch: fetch}
}

type socialCandidate struct {
	url   string
	score int
	order int
}

// socialCollector accumulates scored candidates per platform.
type socialCollector struct {
	brand      string
	region     string
	candidates map[string][]socialCandidate
	next       int
}

func (c *socialCollector) add(rawURL string) {
	plat := classifyPlatform(rawURL)
	if plat == "" {
		return
	}
	u := normalize.CanonicalURL(rawURL)
	if u == "" {
		return
	}
	c.candidates[plat] = append(c.candidates[plat], socialCandidate{
		url:   u,
		score: scoreSocialURL(u, plat, c.brand, c.region),
		order: c.next,
	})
	c.next++
}

// best returns the highest-scored candidate per platform; first seen
// wins ties.
func (c *socialCollector) best() map[string]string {
	out := make(map[string]string, len(c.candidates))
	for plat, cands := range c.candidates {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
		out[plat] = cands[0].url
	}
	return out
}

// Extract gathers social candidates from the company's own pages, the
// knowledge graph, and ranked search queries, then picks the best URL
// per platform. A platform still empty in a region with a known naming
// convention gets one synthesized guess, never verified by a fetch.
func (s *SocialExtractor) Extract(ctx context.Context, company, domain string) model.SocialLinks {
	var website string
	if domain != "" {
		website = "https://" + normalize.Domain(domain)
	}
	collector := &socialCollector{
		brand:      normalize.BrandToken(domain),
		region:     normalize.RegionForDomain(domain),
		candidates: make(map[string][]socialCandidate),
	}

	s.fromOwnPages(ctx, website, collector)
	s.fromKnowledgeGraph(ctx, firstNonEmpty(company, domain), collector)
	discovered := s.fromSearch(ctx, company, domain, collector)

	links := collector.best()
	if collector.brand != "" && collector.region != normalize.DefaultRegion {
		synthesizeRegional(links, collector.brand, collector.region)
	}

	if discovered != "" && normalize.HostMatchesDomain(discovered, domain) {
		website = normalize.CanonicalURL(discovered)
	}
	return model.NewSocialLinks(website, links)
}

// fromOwnPages scans the homepage and newsroom/investor subdomains for
// structured-data sameAs links and social anchors.
func (s *SocialExtractor) fromOwnPages(ctx context.Context, website string, c *socialCollector) {
	if website == "" {
		return
	}
	pages := append([]string{website}, subdomainRoots(website)...)
	for _, pageURL := range pages {
		doc := fetchDoc(ctx, s.fetch, pageURL)
		if doc == nil {
			continue
		}
		for _, org := range htmlutil.JSONLDOrganizations(doc) {
			for _, link := range org.SameAs {
				c.add(link)
			}
		}
		base, err := url.Parse(pageURL)
		if err != nil {
			continue
		}
		for _, a := range htmlutil.Anchors(doc, base) {
			// Permalink-style anchors (a shared post, a careers page) never
			// identify the account itself.
			if hasNoisySubpath(a.Href) {
				continue
			}
			c.add(a.Href)
		}
	}
}

// fromKnowledgeGraph scans entity-record attribute values for platform
// URLs.
func (s *SocialExtractor) fromKnowledgeGraph(ctx context.Context, subject string, c *socialCollector) {
	if subject == "" {
		return
	}
	opts := serper.SearchOptions{Num: searchNum, Locale: c.region}
	kg := knowledgeGraph(ctx, s.search, subject, opts)
	if kg == nil {
		return
	}
	for _, v := range kg.Attributes {
		c.add(v)
	}
}

// fromSearch runs ranked per-platform queries, preferring the domain's
// locale and retrying under the default locale when a query returns
// nothing. It also returns the best official-site URL seen in organic
// results, for the website overwrite check.
func (s *SocialExtractor) fromSearch(ctx context.Context, company, domain string, c *socialCollector) string {
	var queries []string
	if company != "" {
		for plat, host := range searchHostForPlatform {
			queries = append(queries,
				"site:"+host+" "+company,
				company+" official "+plat,
			)
		}
		queries = append(queries, company+" official site")
	}
	if domain != "" {
		queries = append(queries, domain)
	}
	sort.Strings(queries)

	var discovered string
	locales := []string{c.region}
	if c.region != normalize.DefaultRegion {
		locales = append(locales, normalize.DefaultRegion)
	}
	for _, q := range queries {
		var hits []serper.OrganicResult
		for _, gl := range locales {
			hits = organicHits(ctx, s.search, q, serper.SearchOptions{Num: searchNum, Locale: gl})
			if len(hits) > 0 {
				break
			}
		}
		for _, hit := range hits {
			if hit.Link == "" {
				continue
			}
			c.add(hit.Link)
			if discovered == "" && domain != "" && normalize.HostMatchesDomain(hit.Link, domain) {
				discovered = hit.Link
			}
		}
	}
	return discovered
}

// synthesizeRegional fills missing platforms with a guessed regional
// handle when the region has a known convention.
func synthesizeRegional(links map[string]string, brand, region string) {
	suffix, ok := regionHandleFormats[region]
	if !ok {
		return
	}
	handle := brand + suffix
	for plat, root := range guessedProfileURL {
		if _, ok := links[plat]; !ok {
			links[plat] = root + handle
		}
	}
}

// classifyPlatform maps a URL to its platform key, or "" when the host
// belongs to no tracked platform.
func classifyPlatform(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	for suffix, plat := range platformHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return plat
		}
	}
	return ""
}

// scoreSocialURL ranks a candidate by how closely its handle matches
// the brand token, with a penalty for permalink-style noise paths.
func scoreSocialURL(canonicalURL, platform, brand, region string) int {
	handle := handleFromURL(canonicalURL, platform)
	score := 0
	if brand != "" && handle != "" {
		switch {
		case handle == brand:
			score += scoreHandleEqualsBrand
		case strings.HasPrefix(handle, brand):
			score += scoreHandlePrefix
		case strings.Contains(handle, brand):
			score += scoreHandleContains
		}
	}
	if region != normalize.DefaultRegion && region != "" && strings.Contains(handle, region) {
		score += scoreRegionToken
	}
	if hasNoisySubpath(canonicalURL) {
		score += scoreNoisePenalty
	}
	return score
}

func hasNoisySubpath(rawURL string) bool {
	low := strings.ToLower(rawURL)
	for _, noise := range noisySubpaths {
		if strings.Contains(low, noise) {
			return true
		}
	}
	return false
}

// handleFromURL extracts the account handle from a profile URL: the
// first path segment, skipping LinkedIn's /company/ prefix and the
// YouTube @ marker.
func handleFromURL(rawURL, platform string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	handle := segments[0]
	if platform == model.PlatformLinkedIn && strings.EqualFold(handle, "company") && len(segments) > 1 {
		handle = segments[1]
	}
	return strings.ToLower(strings.TrimPrefix(handle, "@"))
}

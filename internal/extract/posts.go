package extract

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/htmlutil"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/normalize"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// contentPaths are the sections of a company site that commonly carry a
// syndicated feed.
var contentPaths = []string{"/newsroom", "/news", "/press", "/blog", "/stories"}

// feedSuffixes are the conventional feed locations under a content
// section.
var feedSuffixes = []string{"/feed", "/rss", "/atom.xml", "/index.xml"}

// feedEntryTake bounds how many entries a single feed contributes.
const feedEntryTake = 6

// PostsExtractor resolves recent posts for a company: site feeds first,
// then news search, then a generic search fallback.
type PostsExtractor struct {
	search Searcher
	fetch  fetcher.Fetcher
}

// NewPostsExtractor wires a posts extractor to its collaborators.
func NewPostsExtractor(search Searcher, fetch fetcher.Fetcher) *PostsExtractor {
	return &PostsExtractor{search: search, fetch: fetch}
}

// Extract runs the posts cascade. The result is always non-empty: when
// every tier comes up dry it holds the single placeholder entry.
func (p *PostsExtractor) Extract(ctx context.Context, company, domain, website string) []model.Post {
	posts := p.fromSiteFeeds(ctx, website)

	subject := firstNonEmpty(company, domain)
	if len(posts) == 0 && subject != "" {
		posts = p.fromNewsSearch(ctx, subject, domain)
	}
	if len(posts) == 0 && subject != "" {
		posts = p.fromWebSearch(ctx, subject, domain)
	}
	return model.SanitizePosts(posts)
}

// fromSiteFeeds probes conventional content paths on the website, then
// conventional feed suffixes plus any feed <link> hints the section
// page advertises.
func (p *PostsExtractor) fromSiteFeeds(ctx context.Context, website string) []model.Post {
	if website == "" {
		return nil
	}
	for _, path := range contentPaths {
		sectionURL := joinPath(website, path)
		page, err := p.fetch.Get(ctx, sectionURL)
		if err != nil {
			continue
		}

		candidates := make([]string, 0, len(feedSuffixes)+2)
		for _, suffix := range feedSuffixes {
			candidates = append(candidates, joinPath(sectionURL, suffix))
		}
		if doc, perr := htmlutil.Parse(page.Body); perr == nil {
			if base, uerr := url.Parse(sectionURL); uerr == nil {
				candidates = append(candidates, htmlutil.FeedLinks(doc, base)...)
			}
		}

		for _, feedURL := range candidates {
			if posts := p.readFeed(ctx, feedURL); len(posts) > 0 {
				return posts
			}
		}
	}
	return nil
}

// readFeed fetches and parses one feed URL, degrading any failure to no
// posts.
func (p *PostsExtractor) readFeed(ctx context.Context, feedURL string) []model.Post {
	page, err := p.fetch.Get(ctx, feedURL)
	if err != nil {
		return nil
	}
	if !looksLikeFeed(page.Body) {
		return nil
	}
	entries, err := parseFeed(page.Body)
	if err != nil {
		zap.L().Debug("extract: feed parse failed", zap.String("url", feedURL), zap.Error(err))
		return nil
	}
	if len(entries) > feedEntryTake {
		entries = entries[:feedEntryTake]
	}
	posts := make([]model.Post, 0, len(entries))
	for _, en := range entries {
		posts = append(posts, model.Post{
			Source:    "blog",
			Title:     strings.TrimSpace(en.Title),
			URL:       en.Link,
			Published: en.Published,
		})
	}
	return posts
}

// looksLikeFeed is a cheap pre-check so HTML error pages never reach
// the XML decoder.
func looksLikeFeed(body []byte) bool {
	head := strings.ToLower(string(body[:min(len(body), 512)]))
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed")
}

// fromNewsSearch queries the news index, preferring the domain's locale
// and retrying under the default locale.
func (p *PostsExtractor) fromNewsSearch(ctx context.Context, subject, domain string) []model.Post {
	for _, gl := range localesFor(domain) {
		resp, err := p.search.News(ctx, subject, serper.SearchOptions{Num: searchNum, Locale: gl})
		if err != nil {
			zap.L().Debug("extract: news search failed", zap.String("query", subject), zap.Error(err))
			continue
		}
		posts := make([]model.Post, 0, len(resp.News))
		for _, n := range resp.News {
			posts = append(posts, model.Post{Source: "news", Title: n.Title, URL: n.Link, Published: n.Date})
		}
		if len(posts) > 0 {
			return posts
		}
	}
	return nil
}

// fromWebSearch is the last tier: a generic web query with "news"
// appended.
func (p *PostsExtractor) fromWebSearch(ctx context.Context, subject, domain string) []model.Post {
	for _, gl := range localesFor(domain) {
		hits := organicHits(ctx, p.search, subject+" news", serper.SearchOptions{Num: searchNum, Locale: gl})
		posts := make([]model.Post, 0, len(hits))
		for _, hit := range hits {
			posts = append(posts, model.Post{Source: "search", Title: hit.Title, URL: hit.Link})
		}
		if len(posts) > 0 {
			return posts
		}
	}
	return nil
}

// localesFor returns the locale preference order for a domain: its
// region first, then the default when they differ.
func localesFor(domain string) []string {
	region := normalize.RegionForDomain(domain)
	if region == normalize.DefaultRegion {
		return []string{normalize.DefaultRegion}
	}
	return []string{region, normalize.DefaultRegion}
}

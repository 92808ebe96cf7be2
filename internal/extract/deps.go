// Package extract implements the cascading signal extractors that turn a
// company name and domain into profile sections. Each extractor owns an
// ordered list of strategies and advances down the list only while its
// section still has gaps; every outbound call is fault-isolated so a
// failed source degrades to an empty contribution.
package extract

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/htmlutil"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// Searcher is the search surface the extractors consume. pkg/serper's
// Client satisfies it; tests inject stubs.
type Searcher interface {
	Search(ctx context.Context, query string, opts serper.SearchOptions) (*serper.SearchResponse, error)
	News(ctx context.Context, query string, opts serper.SearchOptions) (*serper.NewsResponse, error)
}

// AI is the text-service surface consumed by the classifier and
// summarizer. pkg/claude's Client satisfies it.
type AI interface {
	Summarize(ctx context.Context, material string, minWords, maxWords int) (string, error)
	ClassifyLabel(ctx context.Context, text string, labels []string) (string, error)
}

// searchNum is the default result count for extractor queries.
const searchNum = 8

// subdomainPrefixes are the company sub-sites that commonly carry
// contact, leadership, and social signal beyond the main host.
var subdomainPrefixes = []string{"newsroom", "investors"}

// fetchDoc fetches a URL and parses its body as HTML. Any failure along
// the way returns nil; callers treat a nil document as "source had
// nothing" and move on.
func fetchDoc(ctx context.Context, f fetcher.Fetcher, pageURL string) *html.Node {
	page, err := f.Get(ctx, pageURL)
	if err != nil {
		zap.L().Debug("extract: fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	doc, err := htmlutil.Parse(page.Body)
	if err != nil {
		zap.L().Debug("extract: parse failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	return doc
}

// organicHits runs a query and returns its ranked results, degrading a
// failed search to an empty slice.
func organicHits(ctx context.Context, s Searcher, query string, opts serper.SearchOptions) []serper.OrganicResult {
	resp, err := s.Search(ctx, query, opts)
	if err != nil {
		zap.L().Debug("extract: search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return resp.Organic
}

// knowledgeGraph runs an entity query and returns its knowledge-graph
// record, or nil when the search failed or attached none.
func knowledgeGraph(ctx context.Context, s Searcher, query string, opts serper.SearchOptions) *serper.KnowledgeGraph {
	resp, err := s.Search(ctx, query, opts)
	if err != nil {
		zap.L().Debug("extract: kg lookup failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return resp.KnowledgeGraph
}

// subdomainRoots returns the newsroom/investor roots for a website,
// e.g. https://newsroom.acme.com for https://acme.com.
func subdomainRoots(website string) []string {
	u, err := url.Parse(website)
	if err != nil || u.Host == "" {
		return nil
	}
	host := strings.TrimPrefix(u.Host, "www.")
	roots := make([]string, 0, len(subdomainPrefixes))
	for _, sub := range subdomainPrefixes {
		roots = append(roots, u.Scheme+"://"+sub+"."+host)
	}
	return roots
}

// joinPath appends a path to a site root, normalizing slashes.
func joinPath(root, path string) string {
	return strings.TrimRight(root, "/") + "/" + strings.TrimLeft(path, "/")
}

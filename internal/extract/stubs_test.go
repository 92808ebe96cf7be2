package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// stubSearch serves canned results: hits whose key is a substring of the
// query are returned, and every Search response carries the stub's
// knowledge graph.
type stubSearch struct {
	organic map[string][]serper.OrganicResult
	kg      *serper.KnowledgeGraph
	news    []serper.NewsItem
	err     error

	queries []string
	locales []string
}

func (s *stubSearch) Search(_ context.Context, query string, opts serper.SearchOptions) (*serper.SearchResponse, error) {
	s.queries = append(s.queries, query)
	s.locales = append(s.locales, opts.Locale)
	if s.err != nil {
		return nil, s.err
	}
	resp := &serper.SearchResponse{KnowledgeGraph: s.kg}
	for key, hits := range s.organic {
		if strings.Contains(query, key) {
			resp.Organic = append(resp.Organic, hits...)
		}
	}
	return resp, nil
}

func (s *stubSearch) News(_ context.Context, query string, opts serper.SearchOptions) (*serper.NewsResponse, error) {
	s.queries = append(s.queries, query)
	s.locales = append(s.locales, opts.Locale)
	if s.err != nil {
		return nil, s.err
	}
	return &serper.NewsResponse{News: s.news}, nil
}

// stubFetch serves pages from a URL→body map; anything else errors.
type stubFetch struct {
	pages map[string]string
	calls []string
}

func (f *stubFetch) Get(_ context.Context, url string) (*fetcher.Page, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, eris.Errorf("stub: no page for %s", url)
	}
	return &fetcher.Page{URL: url, FinalURL: url, StatusCode: 200, Body: []byte(body)}, nil
}

// stubAI records its inputs and returns canned answers.
type stubAI struct {
	summary string
	label   string
	err     error

	material string
	labels   []string
}

func (a *stubAI) Summarize(_ context.Context, material string, _, _ int) (string, error) {
	a.material = material
	if a.err != nil {
		return "", a.err
	}
	return a.summary, nil
}

func (a *stubAI) ClassifyLabel(_ context.Context, text string, labels []string) (string, error) {
	a.material = text
	a.labels = labels
	if a.err != nil {
		return "", a.err
	}
	return a.label, nil
}

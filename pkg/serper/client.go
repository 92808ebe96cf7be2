// Package serper wraps the Serper search API: ranked web results, news
// results, and the knowledge-graph record attached to entity queries.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/resilience"
)

const defaultBaseURL = "https://google.serper.dev"

// Client performs Serper API operations.
type Client interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
	News(ctx context.Context, query string, opts SearchOptions) (*NewsResponse, error)
}

// SearchOptions tune a single query.
type SearchOptions struct {
	// Num bounds the result count. Default 10.
	Num int
	// Locale is the gl country code ("us", "de", ...). Default "us".
	Locale string
}

// OrganicResult is one ranked web search hit.
type OrganicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// KnowledgeGraph is the pre-aggregated entity record Serper attaches to
// matched queries. Attributes carry loosely-typed fields like phone,
// headquarters, CEO, founders.
type KnowledgeGraph struct {
	Title      string            `json:"title"`
	Type       string            `json:"type"`
	Website    string            `json:"website"`
	Attributes map[string]string `json:"attributes"`
}

// Attribute looks up a knowledge-graph attribute by case-insensitive
// substring of its label. Returns "" when absent. Labels are checked in
// sorted order so a record with several matching keys resolves the same
// way on every call.
func (kg *KnowledgeGraph) Attribute(labelPart string) string {
	if kg == nil {
		return ""
	}
	labelPart = strings.ToLower(labelPart)
	keys := make([]string, 0, len(kg.Attributes))
	for k := range kg.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), labelPart) {
			return kg.Attributes[k]
		}
	}
	return ""
}

// SearchResponse is the web search payload.
type SearchResponse struct {
	Organic        []OrganicResult `json:"organic"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph"`
}

// NewsItem is one news search hit.
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}

// NewsResponse is the news search payload.
type NewsResponse struct {
	News []NewsItem `json:"news"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) { c.retry = cfg }
}

// WithBreaker trips the client open after repeated failures so a dead
// search backend cannot stall every cascade tier.
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *httpClient) { c.breaker = b }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	retry   resilience.RetryConfig
	breaker *resilience.Breaker
}

// NewClient creates a Serper client. An empty API key yields a disabled
// client whose calls return empty results, so a missing credential
// degrades to "no signal" instead of failing the build.
func NewClient(apiKey string, opts ...Option) Client {
	if apiKey == "" {
		zap.L().Warn("serper: no API key configured, search disabled")
		return disabledClient{}
	}
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
		retry:   resilience.RetryConfig{MaxAttempts: 2},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type queryRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
	GL  string `json:"gl,omitempty"`
}

func (c *httpClient) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, "/search", query, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) News(ctx context.Context, query string, opts SearchOptions) (*NewsResponse, error) {
	var out NewsResponse
	if err := c.post(ctx, "/news", query, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) post(ctx context.Context, path, query string, opts SearchOptions, out any) error {
	if c.breaker != nil && !c.breaker.Allow() {
		return resilience.ErrBreakerOpen
	}

	if opts.Num <= 0 {
		opts.Num = 10
	}
	if opts.Locale == "" {
		opts.Locale = "us"
	}
	body, err := json.Marshal(queryRequest{Q: query, Num: opts.Num, GL: opts.Locale})
	if err != nil {
		return eris.Wrap(err, "serper: marshal request")
	}

	respBody, err := resilience.Retry(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, eris.Wrap(err, "serper: create request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-KEY", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "serper: send request")
		}
		defer resp.Body.Close() //nolint:errcheck

		b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, eris.Wrap(err, "serper: read response")
		}
		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("serper: unexpected status %d", resp.StatusCode)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}
		return b, nil
	})
	if c.breaker != nil {
		c.breaker.Record(err)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "serper: unmarshal response")
	}
	return nil
}

// disabledClient satisfies Client when no credential is configured.
type disabledClient struct{}

func (disabledClient) Search(context.Context, string, SearchOptions) (*SearchResponse, error) {
	return &SearchResponse{}, nil
}

func (disabledClient) News(context.Context, string, SearchOptions) (*NewsResponse, error) {
	return &NewsResponse{}, nil
}

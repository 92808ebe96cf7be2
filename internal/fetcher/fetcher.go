// Package fetcher performs bounded HTTP page retrieval for the extractors:
// capped timeouts, redirects, and body size, per-host rate limiting, retry
// on transient failures, and an optional advisory response cache.
package fetcher

import "context"

// Page is a fetched document. Body is raw HTML (or feed XML), capped.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves pages. Implementations must be safe for concurrent use.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Page, error)
}

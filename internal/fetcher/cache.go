package fetcher

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // sqlite driver
)

// CachedFetcher decorates a Fetcher with a sqlite-backed response cache.
// The cache is purely advisory: a cache failure never fails the fetch, and
// correctness never depends on a hit.
type CachedFetcher struct {
	inner Fetcher
	db    *sql.DB
	ttl   time.Duration
}

// NewCachedFetcher opens (or creates) the cache database at path and wraps
// inner. A non-positive TTL disables caching and returns inner unchanged.
func NewCachedFetcher(inner Fetcher, path string, ttl time.Duration) (Fetcher, error) {
	if ttl <= 0 {
		return inner, nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open cache")
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pages (
			url        TEXT PRIMARY KEY,
			final_url  TEXT NOT NULL,
			status     INTEGER NOT NULL,
			body       BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "fetcher: init cache schema")
	}
	return &CachedFetcher{inner: inner, db: db, ttl: ttl}, nil
}

// Get returns a fresh cached response when available, otherwise fetches
// through and stores the result.
func (c *CachedFetcher) Get(ctx context.Context, url string) (*Page, error) {
	if p := c.lookup(ctx, url); p != nil {
		return p, nil
	}

	page, err := c.inner.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	c.store(ctx, page)
	return page, nil
}

// Close releases the cache database.
func (c *CachedFetcher) Close() error {
	return c.db.Close()
}

func (c *CachedFetcher) lookup(ctx context.Context, url string) *Page {
	cutoff := time.Now().Add(-c.ttl).Unix()
	row := c.db.QueryRowContext(ctx,
		`SELECT final_url, status, body FROM pages WHERE url = ? AND fetched_at > ?`,
		url, cutoff,
	)
	p := Page{URL: url}
	if err := row.Scan(&p.FinalURL, &p.StatusCode, &p.Body); err != nil {
		if err != sql.ErrNoRows {
			zap.L().Debug("fetcher: cache lookup failed", zap.String("url", url), zap.Error(err))
		}
		return nil
	}
	return &p
}

func (c *CachedFetcher) store(ctx context.Context, p *Page) {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pages (url, final_url, status, body, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.URL, p.FinalURL, p.StatusCode, p.Body, time.Now().Unix(),
	)
	if err != nil {
		zap.L().Debug("fetcher: cache store failed", zap.String("url", p.URL), zap.Error(err))
	}
}

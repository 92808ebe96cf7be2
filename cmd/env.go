package main

import (
	"io"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/profile"
	"github.com/sells-group/profile-cli/internal/resilience"
	"github.com/sells-group/profile-cli/pkg/claude"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// env bundles the wired builder with anything that needs closing on exit.
type env struct {
	Builder *profile.Builder

	closers []io.Closer
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
}

// initEnv wires the outbound clients from config and assembles the
// profile builder. Missing API keys yield disabled clients, so the
// build still runs and degrades to empty sections.
func initEnv(mode string) (*env, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, eris.Wrap(err, "validate config")
	}

	searchOpts := []serper.Option{}
	if cfg.Serper.BaseURL != "" {
		searchOpts = append(searchOpts, serper.WithBaseURL(cfg.Serper.BaseURL))
	}
	if cfg.Serper.Retries > 0 {
		searchOpts = append(searchOpts, serper.WithRetry(resilience.RetryConfig{
			MaxAttempts: cfg.Serper.Retries + 1,
		}))
	}
	search := serper.NewClient(cfg.Serper.Key, searchOpts...)

	aiOpts := []claude.Option{}
	if cfg.Anthropic.Model != "" {
		aiOpts = append(aiOpts, claude.WithModel(cfg.Anthropic.Model))
	}
	ai := claude.NewClient(cfg.Anthropic.Key, aiOpts...)

	var fetch fetcher.Fetcher = fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		Retry:        resilience.RetryConfig{MaxAttempts: cfg.Fetch.Retries + 1},
		HostRate:     rate.Limit(cfg.Fetch.PerHostRPS),
		MaxBodyBytes: int64(cfg.Fetch.MaxBodyKB) * 1024,
	})

	e := &env{}
	if cfg.Cache.Path != "" {
		cached, err := fetcher.NewCachedFetcher(fetch, cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return nil, eris.Wrap(err, "init page cache")
		}
		if c, ok := cached.(io.Closer); ok {
			e.closers = append(e.closers, c)
		}
		fetch = cached
	}

	e.Builder = profile.NewBuilder(search, fetch, ai,
		profile.WithMaxBatchRows(cfg.Batch.MaxRows),
		profile.WithBulkParallelism(cfg.Batch.Parallelism),
	)
	return e, nil
}

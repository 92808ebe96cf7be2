// Package profile assembles complete company profiles: it fans the
// extractors out over their sections, degrades every failure to a
// documented default, and guarantees a structurally complete result.
package profile

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/profile-cli/internal/extract"
	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/normalize"
	"github.com/sells-group/profile-cli/internal/resilience"
)

// ErrNoInput is the only caller-visible build error: neither a company
// name nor a domain was supplied.
var ErrNoInput = eris.New("profile: neither company name nor domain supplied")

// ErrBatchTooLarge rejects a bulk request before any extraction starts.
var ErrBatchTooLarge = eris.New("profile: batch exceeds row limit")

// Defaults for the bulk path; overridable via options.
const (
	DefaultMaxBatchRows    = 100
	defaultBulkParallelism = 4
)

// Input is one bulk row. Either field may be empty, not both.
type Input struct {
	Company string `json:"company"`
	Domain  string `json:"domain"`
}

// Builder owns the extractor set and the build policy. It is safe for
// concurrent use; every Build call is independent.
type Builder struct {
	contacts   *extract.ContactExtractor
	executives *extract.ExecutiveExtractor
	socials    *extract.SocialExtractor
	posts      *extract.PostsExtractor
	classifier *extract.Classifier
	summarizer *extract.Summarizer

	maxBatchRows    int
	bulkParallelism int
}

// Option tunes a Builder.
type Option func(*Builder)

// WithMaxBatchRows caps bulk request size.
func WithMaxBatchRows(n int) Option {
	return func(b *Builder) { b.maxBatchRows = n }
}

// WithBulkParallelism bounds concurrent builds inside BuildBulk.
func WithBulkParallelism(n int) Option {
	return func(b *Builder) { b.bulkParallelism = n }
}

// NewBuilder wires a Builder to its boundary collaborators.
func NewBuilder(search extract.Searcher, fetch fetcher.Fetcher, ai extract.AI, opts ...Option) *Builder {
	b := &Builder{
		contacts:        extract.NewContactExtractor(search, fetch),
		executives:      extract.NewExecutiveExtractor(search, fetch),
		socials:         extract.NewSocialExtractor(search, fetch),
		posts:           extract.NewPostsExtractor(search, fetch),
		classifier:      extract.NewClassifier(ai),
		summarizer:      extract.NewSummarizer(ai),
		maxBatchRows:    DefaultMaxBatchRows,
		bulkParallelism: defaultBulkParallelism,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build assembles one profile. It errors only on empty input; every
// extraction failure degrades to that section's default, so the
// returned profile is always structurally complete.
func (b *Builder) Build(ctx context.Context, company, domain string) (model.Profile, error) {
	company = strings.TrimSpace(company)
	domain = normalize.Domain(domain)
	if company == "" && domain == "" {
		return model.Profile{}, ErrNoInput
	}
	start := time.Now()

	// Socials run first: they settle the website the page-crawling
	// sections start from.
	socials := resilience.Safe(ctx, "socials", model.NewSocialLinks("", nil),
		func(ctx context.Context) (model.SocialLinks, error) {
			return b.socials.Extract(ctx, company, domain), nil
		})

	website := socials.Website
	if website == "" && domain != "" {
		website = "https://" + domain
	}
	socials.Website = website

	if company == "" {
		company = companyFromDomain(domain)
	}

	var (
		contacts model.ContactSet
		execs    []model.Executive
		posts    []model.Post
		summary  string
		category string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		contacts = resilience.Safe(gctx, "contacts", model.ContactSet{},
			func(ctx context.Context) (model.ContactSet, error) {
				return b.contacts.Extract(ctx, domain, website), nil
			})
		return nil
	})
	g.Go(func() error {
		execs = resilience.Safe(gctx, "executives", nil,
			func(ctx context.Context) ([]model.Executive, error) {
				return b.executives.Extract(ctx, company, domain, website), nil
			})
		return nil
	})
	g.Go(func() error {
		posts = resilience.Safe(gctx, "posts", []model.Post{model.PlaceholderPost()},
			func(ctx context.Context) ([]model.Post, error) {
				return b.posts.Extract(ctx, company, domain, website), nil
			})
		summary = resilience.Safe(gctx, "summary", "",
			func(ctx context.Context) (string, error) {
				return b.summarizer.Summarize(ctx, company, domain, posts), nil
			})
		return nil
	})
	g.Go(func() error {
		category = resilience.Safe(gctx, "category", extract.CategoryOther,
			func(ctx context.Context) (string, error) {
				return b.classifier.Classify(ctx, company, domain, socials), nil
			})
		return nil
	})
	_ = g.Wait()

	return model.Profile{
		Company:     company,
		Domain:      domain,
		Website:     website,
		Socials:     socials,
		Contacts:    contacts,
		Executives:  execs,
		Summary:     summary,
		RecentPosts: posts,
		Category:    category,
		GeneratedAt: time.Now().UTC().Format(time.DateOnly),
		LatencyMS:   time.Since(start).Milliseconds(),
	}, nil
}

// BuildBulk builds profiles for every row, bounded in parallelism, with
// output order matching input order. The row cap and per-row input
// validation both run before any extraction begins, so a malformed row
// never wastes work done for its neighbors.
func (b *Builder) BuildBulk(ctx context.Context, rows []Input) ([]model.Profile, error) {
	if len(rows) > b.maxBatchRows {
		return nil, eris.Wrapf(ErrBatchTooLarge, "%d rows, limit %d", len(rows), b.maxBatchRows)
	}
	for i, row := range rows {
		if strings.TrimSpace(row.Company) == "" && normalize.Domain(row.Domain) == "" {
			return nil, eris.Wrapf(ErrNoInput, "row %d", i)
		}
	}

	profiles := make([]model.Profile, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.bulkParallelism)
	for i, row := range rows {
		g.Go(func() error {
			p, err := b.Build(gctx, row.Company, row.Domain)
			if err != nil {
				return eris.Wrapf(err, "row %d", i)
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// companyFromDomain derives a display name from the domain's brand
// token: "acme.co.uk" → "Acme".
func companyFromDomain(domain string) string {
	brand := normalize.BrandToken(domain)
	if brand == "" {
		return ""
	}
	return strings.ToUpper(brand[:1]) + brand[1:]
}

package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/profile-cli/internal/resilience"
)

const (
	defaultMaxBodyBytes = 512 * 1024
	maxRedirects        = 5
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	Retry     resilience.RetryConfig
	// HostRate limits requests per host. Zero disables limiting.
	HostRate rate.Limit
	// HostBurst is the limiter burst per host. Default 2.
	HostBurst int
	// MaxBodyBytes caps the bytes read per response. Default 512 KiB.
	MaxBodyBytes int64
}

// HTTPFetcher implements Fetcher with net/http.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates a fetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; profile-cli/1.0)"
	}
	if opts.HostBurst <= 0 {
		opts.HostBurst = 2
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return eris.Errorf("fetcher: stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Get fetches a URL, retrying transient failures a bounded number of times.
// Non-2xx terminal statuses are returned as errors so callers can treat
// them as an empty contribution.
func (f *HTTPFetcher) Get(ctx context.Context, targetURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create request")
	}

	if err := f.waitHost(ctx, req.URL.Hostname()); err != nil {
		return nil, eris.Wrap(err, "fetcher: rate limit wait")
	}

	return resilience.Retry(ctx, f.opts.Retry, func(ctx context.Context) (*Page, error) {
		return f.fetch(ctx, targetURL)
	})
}

func (f *HTTPFetcher) fetch(ctx context.Context, targetURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: get")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read body")
	}

	if resp.StatusCode >= 400 {
		err := eris.Errorf("fetcher: status %d for %s", resp.StatusCode, targetURL)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	return &Page{
		URL:        targetURL,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func (f *HTTPFetcher) waitHost(ctx context.Context, host string) error {
	if f.opts.HostRate <= 0 || host == "" {
		return nil
	}
	f.mu.Lock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(f.opts.HostRate, f.opts.HostBurst)
		f.limiters[host] = lim
	}
	f.mu.Unlock()
	return lim.Wait(ctx)
}

package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/readerize"
)

// Ensure PoliteFetcher implements readerize.Fetcher.
var _ readerize.Fetcher = (*PoliteFetcher)(nil)

// PoliteFetcher wraps a Fetcher so that every request first waits for its
// domain's rate limit, and failed fetches are retried with backoff.
type PoliteFetcher struct {
	Fetcher     readerize.Fetcher
	RateLimiter readerize.DomainLimiter
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Fetch waits for the rate limiter and fetches rawURL, retrying EFETCH
// failures once per configured delay. The wait is repeated before each
// retry.
func (f *PoliteFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readerize.Errorf(readerize.EINVALID, "invalid url %q: %v", rawURL, err)
	}

	fetch := func(ctx context.Context, target string) (string, error) {
		if f.RateLimiter != nil {
			if err := f.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return f.Fetcher.Fetch(ctx, target)
	}

	return FetchWithRetry(ctx, rawURL, fetch, f.RetryDelays, f.Logger)
}

// Close closes the wrapped fetcher.
func (f *PoliteFetcher) Close() error {
	return f.Fetcher.Close()
}

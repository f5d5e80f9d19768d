package crawl_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/crawl"
	"github.com/fwojciec/readerize/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoliteFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("waits on the host before fetching", func(t *testing.T) {
		t.Parallel()

		var domains []string
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html></html>", nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					domains = append(domains, domain)
					return nil
				},
			},
		}

		html, err := fetcher.Fetch(context.Background(), "https://news.example.com/story?page=2")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, []string{"news.example.com"}, domains)
	})

	t.Run("retries fetch failures and waits each time", func(t *testing.T) {
		t.Parallel()

		var attempts, waits atomic.Int32
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if attempts.Add(1) < 3 {
						return "", readerize.Errorf(readerize.EFETCH, "HTTP 503 for %s", url)
					}
					return "<html>ok</html>", nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(context.Context, string) error {
					waits.Add(1)
					return nil
				},
			},
			RetryDelays: []time.Duration{0, 0, 0},
		}

		html, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, int32(3), attempts.Load())
		assert.Equal(t, int32(3), waits.Load())
	})

	t.Run("returns the last error once retries run out", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					attempts.Add(1)
					return "", readerize.Errorf(readerize.EFETCH, "HTTP 503 for %s", url)
				},
			},
			RetryDelays: []time.Duration{0, 0},
		}

		_, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		assert.Equal(t, readerize.EFETCH, readerize.ErrorCode(err))
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					attempts.Add(1)
					return "", readerize.Errorf(readerize.EINVALID, "fetcher is closed")
				},
			},
			RetryDelays: []time.Duration{0, 0},
		}

		_, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		assert.Equal(t, readerize.EINVALID, readerize.ErrorCode(err))
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("stops retrying when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					cancel()
					return "", readerize.Errorf(readerize.EFETCH, "HTTP 503 for %s", url)
				},
			},
			RetryDelays: []time.Duration{time.Hour},
		}

		_, err := fetcher.Fetch(ctx, "https://news.example.com/story")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns the limiter error without fetching", func(t *testing.T) {
		t.Parallel()

		fetched := false
		fetcher := &crawl.PoliteFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					fetched = true
					return "", nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(context.Context, string) error {
					return context.DeadlineExceeded
				},
			},
		}

		_, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, fetched)
	})

	t.Run("rejects unparseable urls", func(t *testing.T) {
		t.Parallel()

		fetcher := &crawl.PoliteFetcher{Fetcher: &mock.Fetcher{}}

		_, err := fetcher.Fetch(context.Background(), "http://[::1")

		assert.Equal(t, readerize.EINVALID, readerize.ErrorCode(err))
	})
}

func TestPoliteFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	fetcher := &crawl.PoliteFetcher{
		Fetcher: &mock.Fetcher{CloseFn: func() error { closed = true; return nil }},
	}

	require.NoError(t, fetcher.Close())
	assert.True(t, closed)
}

func TestRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.RetryDelays(3))
	assert.Empty(t, crawl.RetryDelays(0))
}

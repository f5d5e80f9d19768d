package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/mock"
	readerizeslog "github.com/fwojciec/readerize/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverEntries(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverEntriesFn: func(ctx context.Context, baseURL string, filter *readerize.URLFilter) ([]readerize.SitemapEntry, error) {
				return []readerize.SitemapEntry{{URL: "https://example.com/a"}, {URL: "https://example.com/b"}}, nil
			},
		}

		svc := readerizeslog.NewLoggingSitemapService(inner, logger)
		entries, err := svc.DiscoverEntries(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Len(t, entries, 2)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverEntriesFn: func(ctx context.Context, baseURL string, filter *readerize.URLFilter) ([]readerize.SitemapEntry, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := readerizeslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverEntries(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}

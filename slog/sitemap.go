package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readerize"
)

// Ensure LoggingSitemapService implements readerize.SitemapService.
var _ readerize.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   readerize.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next readerize.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverEntries delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverEntries(ctx context.Context, siteURL string, filter *readerize.URLFilter) (entries []readerize.SitemapEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", siteURL,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverEntries(ctx, siteURL, filter)
}

package mock

import (
	"context"

	"github.com/fwojciec/readerize"
)

var _ readerize.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of readerize.SitemapService.
type SitemapService struct {
	DiscoverEntriesFn func(ctx context.Context, siteURL string, filter *readerize.URLFilter) ([]readerize.SitemapEntry, error)
}

func (s *SitemapService) DiscoverEntries(ctx context.Context, siteURL string, filter *readerize.URLFilter) ([]readerize.SitemapEntry, error) {
	return s.DiscoverEntriesFn(ctx, siteURL, filter)
}

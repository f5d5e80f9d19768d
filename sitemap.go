package readerize

import (
	"context"
	"regexp"
	"time"
)

// SitemapEntry is a page listed in a site's sitemap.
type SitemapEntry struct {
	URL string

	// LastModified is the sitemap's lastmod for the page, or the zero time
	// when the sitemap does not say.
	LastModified time.Time
}

// SitemapService discovers the pages of a site from its sitemaps.
type SitemapService interface {
	// DiscoverEntries lists the pages of the site at siteURL. Sitemaps are
	// found through robots.txt, falling back to /sitemap.xml, and sitemap
	// indexes are followed. When siteURL has a path, only pages below it are
	// returned.
	//
	// A nil filter returns every page. A site without sitemaps yields an
	// empty slice.
	DiscoverEntries(ctx context.Context, siteURL string, filter *URLFilter) ([]SitemapEntry, error)
}

// URLFilter selects URLs by pattern.
type URLFilter struct {
	// Include, when set, keeps only URLs matching at least one pattern.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Package crawl runs the article reader over many pages. It discovers a
// site's pages from its sitemaps, extracts each article concurrently and
// stores the results, skipping pages whose cached copy is still current.
package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/readerize"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages extracted at once.
const DefaultConcurrency = 4

// Crawler extracts the articles of every page listed in a site's sitemaps.
type Crawler struct {
	Sitemaps readerize.SitemapService
	Articles readerize.ArticleService

	// Cache, if set, is consulted before extracting a page and updated
	// after. Optional.
	Cache readerize.ArticleCache

	// Writer, if set, receives every new or changed article. Optional.
	Writer readerize.ArticleWriter

	Concurrency int

	// Refresh extracts every page even when its cached copy is current.
	Refresh bool
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved       int
	Unchanged   int
	Skipped     int
	NotArticles int
	Failed      int
	Bytes       int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

type pageStatus int

const (
	statusExtracted pageStatus = iota
	statusFresh
	statusNotArticle
	statusFailed
)

// pageResult holds the outcome of processing a single sitemap entry.
type pageResult struct {
	url     string
	status  pageStatus
	article *readerize.Article
	cached  *readerize.Article
	err     error
}

// CrawlSite extracts the articles of the pages listed in siteURL's
// sitemaps that pass filter. Pages that fail or turn out not to be
// articles are counted and reported but do not stop the crawl.
// The progress callback, if provided, receives events as crawling proceeds.
func (c *Crawler) CrawlSite(ctx context.Context, siteURL string, filter *readerize.URLFilter, progress ProgressFunc) (*Result, error) {
	entries, err := c.Sitemaps.DiscoverEntries(ctx, siteURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	var result Result
	if len(entries) == 0 {
		return &result, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	notify := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	total := len(entries)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, entry := range entries {
			g.Go(func() error {
				resultCh <- c.processEntry(gctx, entry)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Storage happens here, one page at a time, so Cache and Writer need
	// not be safe for concurrent writes.
	completed := 0
	for page := range resultCh {
		completed++
		event := ProgressEvent{Completed: completed, Total: total, URL: page.url}

		switch page.status {
		case statusFresh:
			result.Skipped++
			event.Type = ProgressSkipped
		case statusNotArticle:
			result.NotArticles++
			event.Type = ProgressSkipped
			event.Error = page.err
		case statusFailed:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = page.err
		case statusExtracted:
			path, changed, err := c.store(ctx, page)
			switch {
			case err != nil:
				result.Failed++
				event.Type = ProgressFailed
				event.Error = err
			case !changed:
				result.Unchanged++
				event.Type = ProgressCompleted
			default:
				result.Saved++
				result.Bytes += len(page.article.ContentHTML)
				event.Type = ProgressCompleted
				event.Path = path
			}
		}
		notify(event)
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// processEntry extracts the article of a single page unless its cached
// copy is newer than the sitemap's last modification time.
func (c *Crawler) processEntry(ctx context.Context, entry readerize.SitemapEntry) pageResult {
	result := pageResult{url: entry.URL}

	if err := ctx.Err(); err != nil {
		result.status, result.err = statusFailed, err
		return result
	}

	if c.Cache != nil {
		cached, err := c.Cache.FindArticleByURL(ctx, entry.URL)
		switch {
		case err == nil:
			if !c.Refresh && isFresh(cached, entry) {
				result.status = statusFresh
				return result
			}
			result.cached = cached
		case readerize.ErrorCode(err) != readerize.ENOTFOUND:
			result.status, result.err = statusFailed, err
			return result
		}
	}

	article, err := c.Articles.GetArticle(ctx, entry.URL, "")
	if err != nil {
		result.status, result.err = statusFailed, err
		if readerize.ErrorCode(err) == readerize.ENOTARTICLE {
			result.status = statusNotArticle
		}
		return result
	}
	article.ContentHash = ComputeHash(article.ContentHTML)

	result.status = statusExtracted
	result.article = article
	return result
}

// store writes a newly extracted article and updates the cache. An article
// whose content hash matches the cached copy is not rewritten, but the
// cache entry is still refreshed so its fetch time moves forward.
func (c *Crawler) store(ctx context.Context, page pageResult) (path string, changed bool, err error) {
	changed = page.cached == nil || page.cached.ContentHash != page.article.ContentHash

	if changed && c.Writer != nil {
		path, err = c.Writer.WriteArticle(ctx, page.article)
		if err != nil {
			return "", false, fmt.Errorf("write article: %w", err)
		}
	}

	if c.Cache != nil {
		if err := c.Cache.SaveArticle(ctx, page.article); err != nil {
			return "", false, fmt.Errorf("cache article: %w", err)
		}
	}

	return path, changed, nil
}

// isFresh reports whether cached was fetched no earlier than the entry's
// last modification. Entries without a lastmod are always fresh once
// cached.
func isFresh(cached *readerize.Article, entry readerize.SitemapEntry) bool {
	if entry.LastModified.IsZero() {
		return true
	}
	return !cached.FetchedAt.Before(entry.LastModified)
}

package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/crawl"
	readerizeslog "github.com/fwojciec/readerize/slog"
	"github.com/fwojciec/readerize/sqlite"
)

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URL         string       `arg:"" help:"Site URL; a path limits the crawl to pages below it"`
	Out         string       `short:"o" required:"" type:"path" help:"Directory for the article files"`
	Cache       string       `type:"path" help:"SQLite database of extracted articles; cached pages newer than their lastmod are skipped"`
	Refresh     bool         `help:"Extract every page even when its cached copy is current"`
	Concurrency int          `short:"c" default:"4" help:"Pages extracted at once"`
	Include     []string     `short:"i" sep:"none" help:"Only crawl URLs matching this regex (repeatable)"`
	Exclude     []string     `short:"x" sep:"none" help:"Skip URLs matching this regex (repeatable)"`
	Extract     ExtractFlags `embed:""`
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fetcher, err := deps.openFetcher(c.Extract)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Sitemaps:    readerizeslog.NewLoggingSitemapService(deps.Sitemaps, deps.Logger),
		Articles:    readerizeslog.NewLoggingArticleService(deps.newReader(c.Extract, fetcher), deps.Logger),
		Writer:      newWriter(c.Out, c.Extract.Format),
		Concurrency: c.Concurrency,
		Refresh:     c.Refresh,
	}

	if c.Cache != "" {
		db, err := deps.openCache(c.Cache)
		if err != nil {
			return err
		}
		defer db.Close()
		crawler.Cache = sqlite.NewArticleCache(db)
	}

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d pages\n", e.Total)
		case crawl.ProgressCompleted:
			if e.Path != "" {
				fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Completed, e.Total, e.Path)
			}
		case crawl.ProgressSkipped:
			if e.Error != nil {
				fmt.Fprintf(deps.Stderr, "skip %s: %s\n", crawl.TruncateURL(e.URL, 60), readerize.ErrorMessage(e.Error))
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "fail %s: %v\n", crawl.TruncateURL(e.URL, 60), e.Error)
		}
	}

	result, err := crawler.CrawlSite(deps.Ctx, c.URL, filter, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Saved %d (%s), unchanged %d, skipped %d, not articles %d, failed %d\n",
			result.Saved, crawl.FormatBytes(result.Bytes), result.Unchanged, result.Skipped, result.NotArticles, result.Failed)
	}
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	return nil
}

// filter compiles the include and exclude patterns.
func (c *BatchCmd) filter() (*readerize.URLFilter, error) {
	if len(c.Include) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	filter := &readerize.URLFilter{}
	for _, p := range c.Include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, readerize.Errorf(readerize.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range c.Exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, readerize.Errorf(readerize.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

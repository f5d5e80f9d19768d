package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/bluemonday"
	"github.com/fwojciec/readerize/crawl"
	"github.com/fwojciec/readerize/fs"
	"github.com/fwojciec/readerize/htmltomarkdown"
	"github.com/fwojciec/readerize/readability"
	readerizeslog "github.com/fwojciec/readerize/slog"
	"github.com/fwojciec/readerize/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	// NewFetcher opens a page fetcher; browser selects headless Chrome.
	NewFetcher func(browser bool, timeout time.Duration) (readerize.Fetcher, error)
	Sitemaps   readerize.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"YAML config file (default .readerize.yaml when present)" type:"path"`
	Verbose bool   `short:"v" help:"Log extraction decisions to stderr"`

	Get     GetCmd     `cmd:"" help:"Extract the article at a URL or in a local file"`
	Batch   BatchCmd   `cmd:"" help:"Extract every article listed in a site's sitemaps"`
	Compare CompareCmd `cmd:"" help:"Compare readerize with other extraction engines on a page"`
	List    ListCmd    `cmd:"" help:"List cached articles"`
	Delete  DeleteCmd  `cmd:"" help:"Remove an article from the cache"`
}

// ExtractFlags are the extraction and fetching flags shared by get and batch.
type ExtractFlags struct {
	Format        string        `enum:"html,markdown" default:"html" help:"Output format (html, markdown)"`
	Browser       bool          `short:"b" help:"Render pages in headless Chrome"`
	Timeout       time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Retries       int           `default:"0" help:"Retries for failed fetches, with backoff"`
	Rate          float64       `default:"1" help:"Requests per second per domain (0 disables the limit)"`
	MaxPages      int           `help:"Most pages merged into one article (0 follows every next link)"`
	MinLength     int           `help:"Shortest article text in characters (default 250)"`
	MinPercentage float64       `help:"Smallest share of the page text an article must hold (default 0.075)"`
	Positive      []string      `short:"p" help:"Extra class/id keyword that marks content (repeatable)"`
	Negative      []string      `short:"n" help:"Extra class/id keyword that marks clutter (repeatable)"`
}

// newReader builds the article reader. Flags win over the config file.
func (d *Dependencies) newReader(f ExtractFlags, fetcher readerize.Fetcher) *readability.Reader {
	rules := readability.NewRules(readability.RulesConfig{
		PositiveKeywords: append(slices.Clone(d.Config.PositiveKeywords), f.Positive...),
		NegativeKeywords: append(slices.Clone(d.Config.NegativeKeywords), f.Negative...),
		Logger:           d.Logger,
	})

	opts := []readability.Option{
		readability.WithRules(rules),
		readability.WithLogger(d.Logger),
		readability.WithCleaner(bluemonday.NewCleaner()),
		readability.WithMinArticleLength(cmp.Or(f.MinLength, d.Config.MinArticleLength, readability.DefaultMinArticleLength)),
		readability.WithMinArticlePercentage(cmp.Or(f.MinPercentage, d.Config.MinArticlePercentage, readability.DefaultMinArticlePercentage)),
		readability.WithMaxPages(cmp.Or(f.MaxPages, d.Config.MaxPages)),
	}
	if fetcher != nil {
		opts = append(opts, readability.WithFetcher(fetcher))
	}
	return readability.NewReader(opts...)
}

// openFetcher opens a logged fetcher that waits for each domain's rate
// limit and retries failed fetches.
func (d *Dependencies) openFetcher(f ExtractFlags) (readerize.Fetcher, error) {
	base, err := d.NewFetcher(f.Browser, f.Timeout)
	if err != nil {
		if f.Browser {
			fmt.Fprintln(d.Stderr, "Hint: Chrome or Chromium must be installed")
		}
		return nil, err
	}
	return &crawl.PoliteFetcher{
		Fetcher:     readerizeslog.NewLoggingFetcher(base, d.Logger),
		RateLimiter: crawl.NewDomainLimiter(f.Rate),
		RetryDelays: crawl.RetryDelays(f.Retries),
		Logger:      d.Logger,
	}, nil
}

// openCache opens the SQLite article cache at path.
func (d *Dependencies) openCache(path string) (*sqlite.DB, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open cache at %q: %w", path, err)
	}
	return db, nil
}

// newWriter returns the article file writer for format.
func newWriter(dir, format string) *fs.Writer {
	if fs.Format(format) == fs.FormatMarkdown {
		return fs.NewMarkdownWriter(dir, htmltomarkdown.NewConverter())
	}
	return fs.NewWriter(dir)
}

// printError reports err on stderr in the form users see.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", readerize.ErrorMessage(err))
}

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/readerize/crawl"
	"github.com/fwojciec/readerize/shiori"
	readerizeslog "github.com/fwojciec/readerize/slog"
	"github.com/fwojciec/readerize/trafilatura"
)

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL     string        `arg:"" help:"Page URL"`
	Browser bool          `short:"b" help:"Also render the page in headless Chrome and report whether scripts change the article"`
	Timeout time.Duration `short:"t" default:"10s" help:"Fetch timeout"`
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	fetcher, err := deps.NewFetcher(false, c.Timeout)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	page, err := readerizeslog.NewLoggingFetcher(fetcher, deps.Logger).Fetch(deps.Ctx, c.URL)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	reader := deps.newReader(ExtractFlags{}, nil)
	results := crawl.CompareEngines(page, []crawl.Engine{
		{Name: "readerize", Extractor: reader},
		{Name: "trafilatura", Extractor: trafilatura.NewExtractor()},
		{Name: "go-readability", Extractor: shiori.NewExtractor()},
	})

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tLENGTH\tTITLE")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\terror: %v\n", r.Engine, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Engine, r.TextLength, r.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !c.Browser {
		return nil
	}

	browser, err := deps.NewFetcher(true, c.Timeout)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return err
	}
	defer browser.Close()

	rendered, err := readerizeslog.NewLoggingFetcher(browser, deps.Logger).Fetch(deps.Ctx, c.URL)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	verdict := "no"
	if crawl.ContentDiffers(page, rendered, reader) {
		verdict = "yes"
	}
	fmt.Fprintf(deps.Stdout, "Browser rendering changes the article: %s\n", verdict)
	return nil
}

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/fs"
	"github.com/fwojciec/readerize/htmltomarkdown"
	readerizeslog "github.com/fwojciec/readerize/slog"
	"github.com/fwojciec/readerize/sqlite"
)

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL     string       `arg:"" optional:"" help:"Article URL"`
	File    string       `short:"f" type:"path" help:"Read the first page from a local file instead of fetching it"`
	Out     string       `short:"o" type:"path" help:"Write the article under this directory instead of stdout"`
	Cache   string       `type:"path" help:"SQLite database of extracted articles"`
	Refresh bool         `help:"Extract again even when the article is cached"`
	Extract ExtractFlags `embed:""`
}

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	if c.URL == "" && c.File == "" {
		err := readerize.Errorf(readerize.EINVALID, "a URL or --file is required")
		printError(deps.Stderr, err)
		return err
	}

	pageURL, text := c.URL, ""
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			err = readerize.Errorf(readerize.EINVALID, "cannot read %s: %v", c.File, err)
			printError(deps.Stderr, err)
			return err
		}
		text = string(data)
		if pageURL == "" {
			pageURL = fileURL(c.File)
		}
	}

	var cache readerize.ArticleCache
	if c.Cache != "" {
		db, err := deps.openCache(c.Cache)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: --cache must name a writable SQLite file")
			return err
		}
		defer db.Close()
		cache = sqlite.NewArticleCache(db)
	}

	article, err := c.article(deps, cache, pageURL, text)
	if err != nil {
		if readerize.ErrorCode(err) == readerize.ENOTARTICLE {
			fmt.Fprintf(deps.Stderr, "not an article: %s\n", pageURL)
		} else {
			printError(deps.Stderr, err)
		}
		return err
	}

	if c.Out != "" {
		path, err := newWriter(c.Out, c.Extract.Format).WriteArticle(deps.Ctx, article)
		if err != nil {
			printError(deps.Stderr, err)
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
		return nil
	}

	body := article.ContentHTML
	if fs.Format(c.Extract.Format) == fs.FormatMarkdown {
		body, err = htmltomarkdown.NewConverter().Convert(body)
		if err != nil {
			printError(deps.Stderr, err)
			return err
		}
	}
	fmt.Fprint(deps.Stdout, strings.TrimSpace(body)+"\n")
	return nil
}

// article returns the cached article for pageURL when allowed, and
// otherwise extracts it and updates the cache.
func (c *GetCmd) article(deps *Dependencies, cache readerize.ArticleCache, pageURL, text string) (*readerize.Article, error) {
	if cache != nil && !c.Refresh && text == "" {
		cached, err := cache.FindArticleByURL(deps.Ctx, pageURL)
		if err == nil {
			deps.Logger.Debug("using cached article", "url", pageURL, "fetched", cached.FetchedAt)
			return cached, nil
		}
		if readerize.ErrorCode(err) != readerize.ENOTFOUND {
			return nil, err
		}
	}

	// A local file without a URL has no next pages to fetch.
	var fetcher readerize.Fetcher
	if c.URL != "" {
		f, err := deps.openFetcher(c.Extract)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fetcher = f
	}

	reader := deps.newReader(c.Extract, fetcher)
	article, err := readerizeslog.NewLoggingArticleService(reader, deps.Logger).GetArticle(deps.Ctx, pageURL, text)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.SaveArticle(deps.Ctx, article); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// fileURL returns the file:// URL of a local path.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

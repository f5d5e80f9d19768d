package readability

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/readerize"
	"golang.org/x/net/html"
)

const (
	// DefaultMinArticleLength is the shortest article text, in characters,
	// accepted as an article.
	DefaultMinArticleLength = 250

	// DefaultMinArticlePercentage is the smallest share of the page text an
	// article must hold.
	DefaultMinArticlePercentage = 0.075
)

// Ensure Reader implements the domain interfaces at compile time.
var (
	_ readerize.ArticleService = (*Reader)(nil)
	_ readerize.Extractor      = (*Reader)(nil)
)

// Reader extracts articles from pages and follows their next page links.
// A Reader holds only configuration and is safe for concurrent use; each
// call owns the documents it creates.
type Reader struct {
	fetcher              readerize.Fetcher
	cleaner              readerize.AttributeCleaner
	rules                *Rules
	logger               *slog.Logger
	minArticleLength     int
	minArticlePercentage float64
	maxPages             int
	now                  func() time.Time
}

// Option configures a Reader.
type Option func(*Reader)

// WithFetcher sets the fetcher used for pages that are not passed in and
// for every page after the first.
func WithFetcher(f readerize.Fetcher) Option {
	return func(r *Reader) {
		r.fetcher = f
	}
}

// WithCleaner sets the cleaner applied to rendered articles.
func WithCleaner(c readerize.AttributeCleaner) Option {
	return func(r *Reader) {
		r.cleaner = c
	}
}

// WithRules sets the pattern tables. Defaults to DefaultRules().
func WithRules(rules *Rules) Option {
	return func(r *Reader) {
		r.rules = rules
	}
}

// WithLogger sets the logger for pagination and article decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithMinArticleLength sets the shortest accepted article text.
func WithMinArticleLength(n int) Option {
	return func(r *Reader) {
		r.minArticleLength = n
	}
}

// WithMinArticlePercentage sets the smallest share of page text an article
// must hold.
func WithMinArticlePercentage(p float64) Option {
	return func(r *Reader) {
		r.minArticlePercentage = p
	}
}

// WithMaxPages caps the number of pages merged into one article. Zero, the
// default, follows next page links until they run out or repeat.
func WithMaxPages(n int) Option {
	return func(r *Reader) {
		r.maxPages = n
	}
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		minArticleLength:     DefaultMinArticleLength,
		minArticlePercentage: DefaultMinArticlePercentage,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.rules == nil {
		r.rules = NewRules(RulesConfig{Logger: r.logger})
	}
	return r
}

// NewDocument parses a page that has already been fetched. It is a
// shorthand for NewReader(opts...).NewDocument(url, text, 1).
func NewDocument(url, text string, opts ...Option) (*Document, error) {
	return NewReader(opts...).NewDocument(url, text, 1)
}

// NewDocument parses text as page number page of an article. When url is
// set, relative links are resolved against it and next page links can be
// found.
func (r *Reader) NewDocument(url, text string, page int) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, readerize.Errorf(readerize.EINVALID, "empty page: %s", url)
	}

	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, readerize.Errorf(readerize.EUNPARSEABLE, "parsing html of %s: %v", url, err)
	}

	title := pageTitle(root)
	genericClean(root)
	if url != "" {
		if err := resolveLinks(root, url); err != nil {
			return nil, readerize.Errorf(readerize.EINVALID, "invalid url %q: %v", url, err)
		}
	}

	return &Document{
		URL:                  url,
		Page:                 page,
		MinArticleLength:     r.minArticleLength,
		MinArticlePercentage: r.minArticlePercentage,
		Text:                 text,
		title:                title,
		root:                 root,
		rules:                r.rules,
		cleaner:              r.cleaner,
		logger:               r.logger,
	}, nil
}

// Parse builds the document for one page, fetching it first when text is
// empty.
func (r *Reader) Parse(ctx context.Context, url, text string, page int) (*Document, error) {
	if text == "" {
		if url == "" {
			return nil, readerize.Errorf(readerize.EINVALID, "url or page text required")
		}
		var err error
		text, err = r.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
	}
	return r.NewDocument(url, text, page)
}

// GetArticle extracts the article at url and every following page it links
// to, merged in page order with the template repeated on each page removed.
// Pass text to skip fetching the first page.
//
// GetArticle returns ENOTARTICLE when the first page does not hold an
// article. A failure on a later page ends pagination and keeps the pages
// gathered so far.
func (r *Reader) GetArticle(ctx context.Context, url, text string) (*readerize.Article, error) {
	first, err := r.Parse(ctx, url, text, 1)
	if err != nil {
		return nil, err
	}
	ok, err := first.IsArticle()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, readerize.Errorf(readerize.ENOTARTICLE, "not an article: %s", url)
	}

	article, err := first.Article()
	if err != nil {
		return nil, err
	}
	merged := cloneTree(article)

	pages := []string{url}
	extra, err := r.followPages(ctx, first)
	if err != nil {
		return nil, err
	}
	for _, p := range extra {
		merged.AppendChild(cloneTree(p.article))
		pages = append(pages, p.url)
	}
	r.rules.RemoveBoilerplate(merged, len(pages))

	content, err := first.renderClean(merged)
	if err != nil {
		return nil, err
	}

	return &readerize.Article{
		URL:         url,
		Title:       first.Title(),
		ContentHTML: content,
		Pages:       pages,
		TextLength:  TextLength(merged),
		FetchedAt:   r.now(),
	}, nil
}

// Extract returns the title and article markup of a single page without
// following next page links.
func (r *Reader) Extract(markup string) (*readerize.ExtractResult, error) {
	doc, err := r.NewDocument("", markup, 1)
	if err != nil {
		return nil, err
	}
	content, err := doc.CleanArticle()
	if err != nil {
		return nil, err
	}
	return &readerize.ExtractResult{
		Title:       doc.Title(),
		ContentHTML: content,
	}, nil
}

// laterPage is a page after the first of an article.
type laterPage struct {
	url     string
	article *html.Node
}

// followPages walks next page links starting after doc. Every URL is
// visited at most once, which ends the walk on link cycles.
func (r *Reader) followPages(ctx context.Context, doc *Document) ([]laterPage, error) {
	used := map[string]struct{}{stripFragment(doc.URL): {}}
	var pages []laterPage

	for r.maxPages == 0 || len(pages)+1 < r.maxPages {
		next := doc.NextPageURL()
		if next == "" {
			break
		}
		if _, ok := used[next]; ok {
			r.logger.Debug("next page already visited", "url", next)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		number := doc.Page + 1
		r.logger.Info("fetching next page", "page", number, "url", next)
		nextDoc, err := r.Parse(ctx, next, "", number)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.logger.Warn("next page unavailable", "page", number, "url", next, "err", err)
			break
		}
		article, err := nextDoc.Article()
		if err != nil {
			r.logger.Warn("next page unparseable", "page", number, "url", next, "err", err)
			break
		}
		if article == nil {
			r.logger.Info("next page has no article", "page", number, "url", next)
			break
		}

		used[next] = struct{}{}
		pages = append(pages, laterPage{url: next, article: article})
		doc = nextDoc
	}
	return pages, nil
}

func (r *Reader) fetch(ctx context.Context, url string) (string, error) {
	if r.fetcher == nil {
		return "", readerize.Errorf(readerize.EINVALID, "no fetcher configured for %s", url)
	}
	text, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		if readerize.ErrorCode(err) != readerize.EINTERNAL {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", readerize.Errorf(readerize.EFETCH, "fetching %s: %v", url, err)
	}
	return text, nil
}

package readability

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/readerize"
	"golang.org/x/net/html"
)

// Document is one parsed page. The page tree is built and cleaned once when
// the document is created; the article is extracted lazily on first access
// and never recomputed.
type Document struct {
	URL                  string
	Page                 int
	MinArticleLength     int
	MinArticlePercentage float64
	Text                 string

	title   string
	root    *html.Node
	rules   *Rules
	cleaner readerize.AttributeCleaner
	logger  *slog.Logger

	once    sync.Once
	article *html.Node
	err     error
}

// Title returns the text of the page's title element.
func (d *Document) Title() string {
	return d.title
}

// Root returns the cleaned page tree. Callers must not modify it.
func (d *Document) Root() *html.Node {
	return d.root
}

// Article returns the extracted article as a detached div, or nil when no
// article could be identified. The result, including a nil result or an
// error, is computed once.
func (d *Document) Article() (*html.Node, error) {
	d.once.Do(func() {
		d.article, d.err = d.rules.Parse(d.root)
		if d.err != nil {
			d.logger.Error("parsing article", "url", d.URL, "page", d.Page, "err", d.err)
		}
	})
	return d.article, d.err
}

// IsArticle reports whether the page has an article that is long enough,
// both in absolute terms and relative to the text of the whole page.
func (d *Document) IsArticle() (bool, error) {
	article, err := d.Article()
	if err != nil {
		return false, err
	}
	if article == nil {
		return false, nil
	}
	length := TextLength(article)
	if length < d.MinArticleLength {
		d.logger.Info("article too short", "url", d.URL, "length", length, "min", d.MinArticleLength)
		return false, nil
	}
	total := TextLength(d.root)
	if float64(length) < d.MinArticlePercentage*float64(total) {
		d.logger.Info("article too small a share of the page",
			"url", d.URL,
			"length", length,
			"page_length", total,
			"min_percentage", d.MinArticlePercentage,
		)
		return false, nil
	}
	return true, nil
}

// CleanArticle returns the markup of the article with presentational
// attributes stripped, or "" when the page has no article.
func (d *Document) CleanArticle() (string, error) {
	article, err := d.Article()
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", nil
	}
	return d.renderClean(article)
}

// NextPageURL returns the absolute URL of the page following this one, or
// "" if the page links to none.
func (d *Document) NextPageURL() string {
	return d.rules.nextPageURL(d.root, d.URL, d.Page)
}

func (d *Document) renderClean(n *html.Node) (string, error) {
	markup, err := render(n)
	if err != nil {
		return "", fmt.Errorf("rendering article: %w", err)
	}
	if d.cleaner == nil {
		return markup, nil
	}
	markup, err = d.cleaner.StripAttributes(markup)
	if err != nil {
		return "", fmt.Errorf("cleaning article: %w", err)
	}
	return markup, nil
}

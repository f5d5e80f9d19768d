package readerize

import (
	"context"
	"time"
)

// Article represents the extracted main content of a web page. Multi-page
// articles are merged into a single Article whose Pages lists every URL
// that contributed content, in page order.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"contentHtml"`
	Pages       []string  `json:"pages"`
	TextLength  int       `json:"textLength"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.ContentHTML == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// ArticleService extracts articles from web pages.
type ArticleService interface {
	// GetArticle returns the cleaned article found at url, following
	// next-page links and merging subsequent pages.
	// If text is non-empty it is used as the body of the first page instead
	// of fetching url.
	// Returns ENOTARTICLE if the first page does not look like an article
	// and EFETCH if the first page cannot be retrieved.
	GetArticle(ctx context.Context, url, text string) (*Article, error)
}

// ArticleCache stores previously extracted articles by URL.
type ArticleCache interface {
	// FindArticleByURL returns the cached article for url.
	// Returns ENOTFOUND if no article is cached.
	FindArticleByURL(ctx context.Context, url string) (*Article, error)

	// FindArticles returns cached articles matching the filter, most
	// recently fetched first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// SaveArticle stores an article, replacing any previous entry for its URL.
	SaveArticle(ctx context.Context, article *Article) error

	// DeleteArticle removes the cached article for url.
	// Returns ENOTFOUND if no article is cached.
	DeleteArticle(ctx context.Context, url string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	// URLPrefix restricts results to articles whose URL starts with it.
	URLPrefix string

	Limit  int
	Offset int
}

// ArticleWriter persists an article outside the application, e.g. as a file.
type ArticleWriter interface {
	// WriteArticle writes the article and returns where it was written.
	WriteArticle(ctx context.Context, article *Article) (string, error)
}

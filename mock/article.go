package mock

import (
	"context"

	"github.com/fwojciec/readerize"
)

var (
	_ readerize.ArticleService = (*ArticleService)(nil)
	_ readerize.ArticleCache   = (*ArticleCache)(nil)
	_ readerize.ArticleWriter  = (*ArticleWriter)(nil)
)

// ArticleService is a mock implementation of readerize.ArticleService.
type ArticleService struct {
	GetArticleFn func(ctx context.Context, url, text string) (*readerize.Article, error)
}

func (s *ArticleService) GetArticle(ctx context.Context, url, text string) (*readerize.Article, error) {
	return s.GetArticleFn(ctx, url, text)
}

// ArticleCache is a mock implementation of readerize.ArticleCache.
type ArticleCache struct {
	FindArticleByURLFn func(ctx context.Context, url string) (*readerize.Article, error)
	FindArticlesFn     func(ctx context.Context, filter readerize.ArticleFilter) ([]*readerize.Article, error)
	SaveArticleFn      func(ctx context.Context, article *readerize.Article) error
	DeleteArticleFn    func(ctx context.Context, url string) error
}

func (c *ArticleCache) FindArticleByURL(ctx context.Context, url string) (*readerize.Article, error) {
	return c.FindArticleByURLFn(ctx, url)
}

func (c *ArticleCache) FindArticles(ctx context.Context, filter readerize.ArticleFilter) ([]*readerize.Article, error) {
	return c.FindArticlesFn(ctx, filter)
}

func (c *ArticleCache) DeleteArticle(ctx context.Context, url string) error {
	return c.DeleteArticleFn(ctx, url)
}

func (c *ArticleCache) SaveArticle(ctx context.Context, article *readerize.Article) error {
	return c.SaveArticleFn(ctx, article)
}

// ArticleWriter is a mock implementation of readerize.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *readerize.Article) (string, error)
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *readerize.Article) (string, error) {
	return w.WriteArticleFn(ctx, article)
}

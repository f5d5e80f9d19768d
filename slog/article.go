package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readerize"
)

// Ensure LoggingArticleService implements readerize.ArticleService.
var _ readerize.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   readerize.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next readerize.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// GetArticle delegates to the wrapped service and logs the page count and
// text length of the result.
func (s *LoggingArticleService) GetArticle(ctx context.Context, url, text string) (article *readerize.Article, err error) {
	defer func(begin time.Time) {
		var pages, length int
		if article != nil {
			pages, length = len(article.Pages), article.TextLength
		}
		s.logger.Info("get article",
			"url", url,
			"pages", pages,
			"text_length", length,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetArticle(ctx, url, text)
}

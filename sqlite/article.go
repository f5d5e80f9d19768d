package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readerize"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readerize.ArticleCache = (*ArticleCache)(nil)

const articleColumns = "id, url, title, content_html, pages, text_length, content_hash, fetched_at"

// ArticleCache implements readerize.ArticleCache using SQLite.
type ArticleCache struct {
	db  *DB
	now func() time.Time
}

// NewArticleCache creates a new ArticleCache.
func NewArticleCache(db *DB) *ArticleCache {
	return &ArticleCache{db: db, now: time.Now}
}

// hashContent computes xxHash of content and returns it as 16 hex digits.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// SaveArticle stores an article, replacing any previous entry for its URL.
// The entry keeps its ID across replacements; article.ID is set to it.
// An empty ContentHash is computed and a zero FetchedAt set to now.
func (c *ArticleCache) SaveArticle(ctx context.Context, article *readerize.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	if article.ContentHash == "" {
		article.ContentHash = hashContent(article.ContentHTML)
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = c.now()
	}
	article.FetchedAt = article.FetchedAt.UTC().Truncate(time.Second)

	var id string
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content_html = excluded.content_html,
			pages = excluded.pages,
			text_length = excluded.text_length,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), article.URL, article.Title, article.ContentHTML, joinPages(article.Pages),
		article.TextLength, article.ContentHash, article.FetchedAt.Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}

	article.ID = id
	return nil
}

// FindArticleByURL retrieves the cached article for url.
func (c *ArticleCache) FindArticleByURL(ctx context.Context, url string) (*readerize.Article, error) {
	row := c.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE url = ?", url)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readerize.Errorf(readerize.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, most recently
// fetched first.
func (c *ArticleCache) FindArticles(ctx context.Context, filter readerize.ArticleFilter) ([]*readerize.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.URLPrefix != "" {
		query.WriteString(` AND url LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(filter.URLPrefix)+"%")
	}

	query.WriteString(" ORDER BY fetched_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := c.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*readerize.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes the cached article for url.
func (c *ArticleCache) DeleteArticle(ctx context.Context, url string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM articles WHERE url = ?", url)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return readerize.Errorf(readerize.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*readerize.Article, error) {
	var article readerize.Article
	var pages, fetchedAt string

	if err := s.Scan(&article.ID, &article.URL, &article.Title, &article.ContentHTML, &pages,
		&article.TextLength, &article.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	article.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	article.Pages = splitPages(pages)

	return &article, nil
}

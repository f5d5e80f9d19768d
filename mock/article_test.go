package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ArticleWriter is expected
	var _ readerize.ArticleWriter = &mock.ArticleWriter{}
}

func TestArticleWriter_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteArticleFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *readerize.Article
		w := &mock.ArticleWriter{
			WriteArticleFn: func(_ context.Context, article *readerize.Article) (string, error) {
				calledWith = article
				return "out/story.html", nil
			},
		}

		article := &readerize.Article{
			URL:         "https://example.com/story",
			Title:       "Story",
			ContentHTML: "<div><p>Body</p></div>",
		}

		path, err := w.WriteArticle(context.Background(), article)

		require.NoError(t, err)
		assert.Equal(t, "out/story.html", path)
		assert.Same(t, article, calledWith)
	})

	t.Run("propagates error from WriteArticleFn", func(t *testing.T) {
		t.Parallel()

		w := &mock.ArticleWriter{
			WriteArticleFn: func(_ context.Context, _ *readerize.Article) (string, error) {
				return "", readerize.Errorf(readerize.EINTERNAL, "disk full")
			},
		}

		_, err := w.WriteArticle(context.Background(), &readerize.Article{})

		require.Error(t, err)
		assert.Equal(t, readerize.EINTERNAL, readerize.ErrorCode(err))
	})
}

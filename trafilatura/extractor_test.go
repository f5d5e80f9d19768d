package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements readerize.Extractor at compile time.
var _ readerize.Extractor = (*trafilatura.Extractor)(nil)

const newsPage = `<!DOCTYPE html>
<html>
<head>
<title>Flood closes bridge - Valley News</title>
<meta property="og:title" content="Flood closes bridge">
</head>
<body>
<nav class="main-nav"><ul><li><a href="/">Home</a></li><li><a href="/weather">Weather</a></li></ul></nav>
<article>
<h1>Flood closes bridge</h1>
<p>The river rose overnight and by morning the old stone bridge was closed to traffic in both directions.</p>
<p>Engineers said the supports would be inspected once the water receded, which could take several days.</p>
</article>
<footer><p>Copyright 2024 Valley News</p><nav>Privacy | Terms</nav></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts the title", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(newsPage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts the article body", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(newsPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "old stone bridge")
		assert.Contains(t, result.ContentHTML, "once the water receded")
	})

	t.Run("removes navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(newsPage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Valley News")
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Simple content</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(" ")

		require.Error(t, err)
		assert.Equal(t, readerize.EINVALID, readerize.ErrorCode(err))
	})
}

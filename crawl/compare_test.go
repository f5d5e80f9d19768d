package crawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/crawl"
	"github.com/fwojciec/readerize/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentDiffers(t *testing.T) {
	t.Parallel()

	t.Run("returns true when Rod content is more than 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return &readerize.ExtractResult{
						ContentHTML: "<p>Loading</p>",
					}, nil
				}
				return &readerize.ExtractResult{
					ContentHTML: "<p>The river rose overnight and the lower town flooded.</p>",
				}, nil
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.True(t, result)
	})

	t.Run("returns false when content lengths are similar", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return &readerize.ExtractResult{
						ContentHTML: "some content here", // 17 chars
					}, nil
				}
				return &readerize.ExtractResult{
					ContentHTML: "similar size text", // 17 chars (equal)
				}, nil
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.False(t, result)
	})

	t.Run("returns false when Rod content is only 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return &readerize.ExtractResult{
						ContentHTML: "0123456789", // 10 chars
					}, nil
				}
				return &readerize.ExtractResult{
					ContentHTML: "012345678901234", // 15 chars (exactly 50% longer)
				}, nil
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.False(t, result)
	})

	t.Run("returns true when HTTP extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return nil, readerize.Errorf(readerize.EINTERNAL, "extraction failed")
				}
				return &readerize.ExtractResult{
					ContentHTML: "rod content",
				}, nil
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.True(t, result)
	})

	t.Run("returns true when Rod extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return &readerize.ExtractResult{
						ContentHTML: "http content",
					}, nil
				}
				return nil, readerize.Errorf(readerize.EINTERNAL, "extraction failed")
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.True(t, result)
	})

	t.Run("returns true when HTTP content is empty", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*readerize.ExtractResult, error) {
				if html == "http-html" {
					return &readerize.ExtractResult{
						ContentHTML: "", // Empty
					}, nil
				}
				return &readerize.ExtractResult{
					ContentHTML: "rod has content",
				}, nil
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.True(t, result)
	})

	t.Run("returns true when both extractions fail", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*readerize.ExtractResult, error) {
				return nil, readerize.Errorf(readerize.EINTERNAL, "extraction failed")
			},
		}

		result := crawl.ContentDiffers("http-html", "rod-html", extractor)

		assert.True(t, result)
	})
}

func TestCompareEngines(t *testing.T) {
	t.Parallel()

	fixed := func(title, content string) *mock.Extractor {
		return &mock.Extractor{
			ExtractFn: func(string) (*readerize.ExtractResult, error) {
				return &readerize.ExtractResult{Title: title, ContentHTML: content}, nil
			},
		}
	}

	engines := []crawl.Engine{
		{Name: "readerize", Extractor: fixed("Flood", "<div><p>The river   rose.</p><p>Café</p></div>")},
		{Name: "broken", Extractor: &mock.Extractor{
			ExtractFn: func(string) (*readerize.ExtractResult, error) {
				return nil, errors.New("no content")
			},
		}},
		{Name: "empty", Extractor: fixed("Index", "")},
	}

	results := crawl.CompareEngines("<html></html>", engines)

	require.Len(t, results, 3)
	assert.Equal(t, crawl.Comparison{Engine: "readerize", Title: "Flood", TextLength: 19}, results[0])
	assert.Equal(t, "broken", results[1].Engine)
	assert.EqualError(t, results[1].Err, "no content")
	assert.Equal(t, crawl.Comparison{Engine: "empty", Title: "Index"}, results[2])
}

func TestTextLength(t *testing.T) {
	t.Parallel()

	n, err := crawl.TextLength("<p>Crème\n\t brûlée</p><ul><li>one</li></ul>")

	require.NoError(t, err)
	assert.Equal(t, len([]rune("Crème brûléeone")), n)
}

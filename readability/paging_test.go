package readability_test

import (
	"testing"

	"github.com/fwojciec/readerize/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPossiblePagingURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		base      string
		candidate string
		want      bool
	}{
		{name: "same host", base: "https://example.com/story", candidate: "https://example.com/story?page=2", want: true},
		{name: "host case differs", base: "https://Example.com/story", candidate: "https://example.com/story/2", want: true},
		{name: "different host", base: "https://example.com/story", candidate: "https://other.com/story?page=2", want: false},
		{name: "subdomain", base: "https://example.com/story", candidate: "https://www.example.com/story?page=2", want: false},
		{name: "different scheme", base: "https://example.com/story", candidate: "http://example.com/story?page=2", want: false},
		{name: "different port", base: "https://example.com/story", candidate: "https://example.com:8443/story", want: false},
		{name: "relative", base: "https://example.com/story", candidate: "/story?page=2", want: false},
		{name: "empty", base: "https://example.com/story", candidate: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, readability.IsPossiblePagingURL(tt.base, tt.candidate))
		})
	}
}

func TestDocument_NextPageURL(t *testing.T) {
	t.Parallel()

	const pageURL = "https://example.com/story"

	nextPage := func(t *testing.T, page int, body string) string {
		t.Helper()

		doc, err := readability.NewReader().NewDocument(pageURL, "<html><body>"+body+"</body></html>", page)
		require.NoError(t, err)
		return doc.NextPageURL()
	}

	t.Run("follows a next link", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="/story?page=2">Next</a></div>`)
		assert.Equal(t, "https://example.com/story?page=2", got)
	})

	t.Run("follows the link to the following page number", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 2, `<div class="pages"><a href="/story?page=1">1</a> <a href="/story?page=3">3</a> <a href="/story?page=4">4</a></div>`)
		assert.Equal(t, "https://example.com/story?page=3", got)
	})

	t.Run("prefers next over a page number", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="/story/part-two">2</a> <a href="/story/continued">next</a></div>`)
		assert.Equal(t, "https://example.com/story/continued", got)
	})

	t.Run("breaks ties with the page number in the href", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="/gallery/photo">2</a> <a href="/story/page/2">2</a></div>`)
		assert.Equal(t, "https://example.com/story/page/2", got)
	})

	t.Run("accepts short next labels", func(t *testing.T) {
		t.Parallel()

		for _, label := range []string{"Next page", "next »", "»", "Weiter", "Continue"} {
			got := nextPage(t, 1, `<div><a href="/story?page=2">`+label+`</a></div>`)
			assert.Equal(t, "https://example.com/story?page=2", got, label)
		}
	})

	t.Run("ignores links that only mention next or continue", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div class="related"><a href="/news/elsewhere">Read next: drought in the south</a></div>`+
			`<div><a href="/news/other">Continue reading the archive</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("ignores page numbers in the href of unrelated links", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="/category/2">Weather</a> <a href="/news/other-story-2">Another flood story</a> <a href="/story/page/2">More</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("never follows a link to another host", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="https://ads.example.net/story?page=2">Next</a> <a href="https://other.com/2">2</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("ignores previous links", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 2, `<div><a href="/story?page=1">« Previous</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("ignores links in comment threads", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div id="comments"><a href="/story?page=2">next</a></div><div class="userComments"><a href="/story/2">2</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("ignores links to the page itself", func(t *testing.T) {
		t.Parallel()

		got := nextPage(t, 1, `<div><a href="/story#more">next</a></div>`)
		assert.Empty(t, got)
	})

	t.Run("returns nothing for a page without a url", func(t *testing.T) {
		t.Parallel()

		doc, err := readability.NewDocument("", `<html><body><div><a href="https://example.com/2">next</a></div></body></html>`)
		require.NoError(t, err)
		assert.Empty(t, doc.NextPageURL())
	})
}

package readability_test

import (
	"testing"

	"github.com/fwojciec/readerize/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Parse(t *testing.T) {
	t.Parallel()

	rules := readability.DefaultRules()

	t.Run("extracts the highest scoring block", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, articlePage("Flood", []string{paraFlood, paraHarvest, paraRepair}, ""))

		article, err := rules.Parse(root)

		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Len(t, findAll(article, "#story"), 1)
		assert.Empty(t, findAll(article, "#nav"))
		assert.Contains(t, text(article), paraHarvest)
	})

	t.Run("does not modify the page", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, articlePage("Flood", []string{paraFlood, paraHarvest}, `<div class="sidebar">Links</div>`))
		before := renderHTML(t, root)

		_, err := rules.Parse(root)

		require.NoError(t, err)
		assert.Equal(t, before, renderHTML(t, root))
	})

	t.Run("falls back to a conservative pass", func(t *testing.T) {
		t.Parallel()

		// The only content sits in a block that the ruthless pass removes.
		markup := `<html><body><div class="extra"><p>` + paraFlood + `</p><p>` + paraHarvest + `</p></div></body></html>`
		root := parseHTML(t, markup)

		article, err := rules.Parse(root)

		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Contains(t, text(article), paraFlood)
	})

	t.Run("prefers a single article element", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
<div id="story"><p>` + paraFlood + `</p><p>` + paraHarvest + `</p><p>` + paraRepair + `</p><p>` + paraSchool + `</p></div>
<article id="declared"><p>` + paraMarket + `</p><p>` + paraRecord + `</p></article>
</body></html>`
		root := parseHTML(t, markup)

		article, err := rules.Parse(root)

		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Len(t, findAll(article, "article#declared"), 1)
	})

	t.Run("returns nil when nothing qualifies", func(t *testing.T) {
		t.Parallel()

		root := parseHTML(t, `<html><body><p>Short.</p></body></html>`)

		article, err := rules.Parse(root)

		require.NoError(t, err)
		assert.Nil(t, article)
	})
}

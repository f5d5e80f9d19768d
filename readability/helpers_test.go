package readability_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	paraFlood   = "The river ran high that spring, and the town spent weeks stacking sandbags along the old stone wall by the market square."
	paraHarvest = "Farmers upstream lost most of the early harvest, although the orchards on the hills came through with barely a scratch."
	paraRepair  = "Repairs to the bridge took the whole summer, with crews working late into the evening to reopen the road before autumn."
	paraSchool  = "The school stayed closed for nine days while volunteers pumped out the basement and dried the library books in the sun."
	paraMarket  = "By midsummer the market was busy again, and the bakery on the corner reopened with a sign thanking the volunteers by name."
	paraRecord  = "Records kept at the town hall show the water reached its highest level in ninety years, a mark painted on the wall today."
	boilerplate = "Subscribe to the weekly newsletter for more stories from the valley."
)

// parseHTML parses markup into a full document tree.
func parseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()

	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

// find returns the first node under root matching the CSS selector.
func find(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()

	nodes := goquery.NewDocumentFromNode(root).Find(selector).Nodes
	require.NotEmpty(t, nodes, "no match for %q", selector)
	return nodes[0]
}

// findAll returns every node under root matching the CSS selector.
func findAll(root *html.Node, selector string) []*html.Node {
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes
}

// text returns the whitespace-normalized text of n.
func text(n *html.Node) string {
	return strings.Join(strings.Fields(goquery.NewDocumentFromNode(n).Text()), " ")
}

// renderHTML serializes n.
func renderHTML(t *testing.T, n *html.Node) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, html.Render(&b, n))
	return b.String()
}

// articlePage builds a page whose content div holds the given paragraphs,
// followed by extra markup inside the same div.
func articlePage(title string, paragraphs []string, extra string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>")
	b.WriteString(title)
	b.WriteString("</title></head><body>")
	b.WriteString(`<div id="nav"><a href="/">Home</a> <a href="/about">About</a></div>`)
	b.WriteString(`<div id="story">`)
	for _, p := range paragraphs {
		b.WriteString("<p>")
		b.WriteString(p)
		b.WriteString("</p>")
	}
	b.WriteString(extra)
	b.WriteString("</div></body></html>")
	return b.String()
}

// attr returns the value of the key attribute of n, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

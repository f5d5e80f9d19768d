// Package bluemonday implements readerize.AttributeCleaner with a
// bluemonday allow-list policy.
package bluemonday

import (
	"github.com/fwojciec/readerize"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Cleaner implements readerize.AttributeCleaner at compile time.
var _ readerize.AttributeCleaner = (*Cleaner)(nil)

// articleElements are the elements kept in cleaned article markup.
var articleElements = []string{
	"a", "abbr", "article", "b", "blockquote", "br", "caption", "cite",
	"code", "dd", "del", "details", "div", "dl", "dt", "em", "figcaption",
	"figure", "h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img", "ins",
	"kbd", "li", "mark", "ol", "p", "pre", "q", "s", "section", "small",
	"span", "strong", "sub", "summary", "sup", "table", "tbody", "td",
	"tfoot", "th", "thead", "time", "tr", "u", "ul",
}

// Cleaner strips presentational attributes (class, id, style, event
// handlers, data-*) from article markup. Structure, links, images and
// table spans are kept. Elements outside the article vocabulary are
// unwrapped, keeping their text.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner returns a Cleaner with the article policy.
func NewCleaner() *Cleaner {
	p := bluemonday.NewPolicy()
	p.AllowElements(articleElements...)

	p.AllowStandardURLs()
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("cite").OnElements("blockquote", "q", "del", "ins")
	p.AllowAttrs("datetime").OnElements("time", "del", "ins")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("open").Matching(bluemonday.Paragraph).OnElements("details")

	p.RequireNoFollowOnLinks(false)

	return &Cleaner{policy: p}
}

// StripAttributes returns markup with every attribute outside the policy
// removed.
func (c *Cleaner) StripAttributes(markup string) (string, error) {
	return c.policy.Sanitize(markup), nil
}

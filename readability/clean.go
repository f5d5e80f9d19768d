package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// linkAttrs are the attributes holding URLs that are made absolute.
var linkAttrs = []string{"href", "src", "action", "cite", "poster"}

// lazySrcAttrs hold the real image URL on pages that load images lazily.
var lazySrcAttrs = []string{"data-lazy-src", "data-src"}

// genericClean removes markup that never carries article content: scripts,
// styles, stylesheet links and comments, plus inline event handlers, inline
// styles and javascript: URLs. Lazily loaded images get their real src.
func genericClean(root *html.Node) {
	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, link").Remove()

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		for _, key := range lazySrcAttrs {
			if src, ok := sel.Attr(key); ok && strings.TrimSpace(src) != "" {
				sel.SetAttr("src", strings.TrimSpace(src))
				sel.RemoveAttr(key)
				return
			}
		}
	})

	var comments []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, c := range comments {
		_ = dropTree(c)
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if strings.HasPrefix(key, "on") || key == "style" {
				continue
			}
			if isLinkAttr(key) && strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
			attrs = append(attrs, a)
		}
		n.Attr = attrs
	})
}

// resolveLinks rewrites relative URLs in root as absolute URLs against
// pageURL, honouring a <base href> if the page declares one.
func resolveLinks(root *html.Node, pageURL string) error {
	base, err := url.Parse(pageURL)
	if err != nil {
		return err
	}

	doc := goquery.NewDocumentFromNode(root)
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		for i, a := range n.Attr {
			if !isLinkAttr(a.Key) {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(a.Val))
			if err != nil {
				continue
			}
			n.Attr[i].Val = base.ResolveReference(ref).String()
		}
	})
	return nil
}

func isLinkAttr(key string) bool {
	for _, k := range linkAttrs {
		if key == k {
			return true
		}
	}
	return false
}

// pageTitle returns the trimmed text of the page's <title>.
func pageTitle(root *html.Node) string {
	sel := goquery.NewDocumentFromNode(root).Find("title").First()
	return strings.Join(strings.Fields(sel.Text()), " ")
}

package readability

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// errDetached is returned when removing a node that has no parent.
var errDetached = errors.New("node is not attached to a tree")

var (
	newlineRe = regexp.MustCompile(`\s*\n\s*`)
	spacesRe  = regexp.MustCompile(`[ \t]{2,}`)
)

// clean collapses whitespace the way every text length in the engine is measured.
func clean(text string) string {
	text = newlineRe.ReplaceAllString(text, "\n")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// textContent returns the text of n and all of its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// TextLength returns the length in characters of the whitespace-collapsed
// text content of n.
func TextLength(n *html.Node) int {
	return utf8.RuneCountInString(clean(textContent(n)))
}

// tags returns the descendants of n (not n itself) with any of the given tag
// names. Results are grouped by name in argument order; each group is in
// document order.
func tags(n *html.Node, names ...string) []*html.Node {
	sel := goquery.NewDocumentFromNode(n).Selection
	var out []*html.Node
	for _, name := range names {
		out = append(out, sel.Find(name).Nodes...)
	}
	return out
}

// reverseTags returns the descendants of n matching any of the tag names in
// reverse document order, so descendants come before their ancestors.
func reverseTags(n *html.Node, names ...string) []*html.Node {
	nodes := goquery.NewDocumentFromNode(n).Find(strings.Join(names, ", ")).Nodes
	out := make([]*html.Node, len(nodes))
	for i, node := range nodes {
		out[len(nodes)-1-i] = node
	}
	return out
}

// dropTree detaches n, together with its subtree, from its parent.
// Text following n stays in place because it is a separate sibling node.
func dropTree(n *html.Node) error {
	if n.Parent == nil {
		return errDetached
	}
	n.Parent.RemoveChild(n)
	return nil
}

// cloneTree returns a deep copy of n that shares no nodes with the original.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}

func newElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// retag renames an element in place.
func retag(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// elementChildren returns a snapshot of the element children of n.
func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// leadingText returns the text of n that precedes its first child node that
// is not text.
func leadingText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil && c.Type == html.TextNode; c = c.NextSibling {
		b.WriteString(c.Data)
	}
	return b.String()
}

// tailNodes returns the run of text nodes directly following n.
func tailNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for s := n.NextSibling; s != nil && s.Type == html.TextNode; s = s.NextSibling {
		out = append(out, s)
	}
	return out
}

func joinText(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Data)
	}
	return b.String()
}

// render serializes n and its subtree to markup.
func render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// describe returns a short CSS-like label for n and its parent, for logs.
func describe(n *html.Node) string {
	label := func(n *html.Node) string {
		name := n.Data
		if id := getAttr(n, "id"); id != "" {
			name += "#" + id
		}
		if class := getAttr(n, "class"); class != "" {
			name += "." + strings.Join(strings.Fields(class), ".")
		}
		return name
	}
	if n.Type != html.ElementNode {
		return "[non-element]"
	}
	name := label(n)
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		name += " - " + label(n.Parent)
	}
	return name
}

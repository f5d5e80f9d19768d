package readability

import (
	"strings"

	"golang.org/x/net/html"
)

// bodyID marks the body of a working copy so the output can be styled or
// debugged externally. Nothing in the engine reads it.
const bodyID = "readabilityBody"

// Preprocess prepares a working copy of a page for scoring. It removes
// scripts and styles, marks the body, removes unlikely candidates when
// ruthless is set, and turns divs that are used as paragraphs into real
// paragraphs. The tree is mutated in place.
func (r *Rules) Preprocess(root *html.Node, ruthless bool) error {
	for _, n := range tags(root, "script", "style") {
		_ = dropTree(n)
	}
	for _, n := range tags(root, "body") {
		setAttr(n, "id", bodyID)
	}
	if ruthless {
		r.removeUnlikelyCandidates(root)
	}
	return r.transformMisusedDivs(root)
}

// removeUnlikelyCandidates drops elements whose class and id suggest
// comments, navigation, sidebars and similar chrome.
func (r *Rules) removeUnlikelyCandidates(root *html.Node) {
	for _, n := range tags(root, "*") {
		s := getAttr(n, "class") + " " + getAttr(n, "id")
		if len(s) < 2 {
			continue
		}
		if n.Data == "html" || n.Data == "body" {
			continue
		}
		if r.unlikely.MatchString(s) && !r.maybe.MatchString(s) {
			r.logger.Debug("removing unlikely candidate", "node", describe(n))
			_ = dropTree(n)
		}
	}
}

// transformMisusedDivs runs two passes over the divs of root. The first
// retags every div whose children contain no block-level markup as a p. The
// second wraps the loose text left in the remaining divs into paragraphs and
// removes their br children.
func (r *Rules) transformMisusedDivs(root *html.Node) error {
	for _, div := range tags(root, "div") {
		var markup strings.Builder
		for _, child := range elementChildren(div) {
			if err := html.Render(&markup, child); err != nil {
				return err
			}
		}
		if !r.divToP.MatchString(markup.String()) {
			retag(div, "p")
		}
	}

	for _, div := range tags(root, "div") {
		var lead []*html.Node
		for c := div.FirstChild; c != nil && c.Type == html.TextNode; c = c.NextSibling {
			lead = append(lead, c)
		}
		if strings.TrimSpace(joinText(lead)) != "" {
			p := newElement("p")
			for _, t := range lead {
				div.RemoveChild(t)
				p.AppendChild(t)
			}
			div.InsertBefore(p, div.FirstChild)
		}

		var children []*html.Node
		for c := div.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				children = append(children, c)
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if tail := tailNodes(child); strings.TrimSpace(joinText(tail)) != "" {
				after := tail[len(tail)-1].NextSibling
				p := newElement("p")
				for _, t := range tail {
					div.RemoveChild(t)
					p.AppendChild(t)
				}
				div.InsertBefore(p, after)
			}
			if isElement(child, "br") {
				div.RemoveChild(child)
			}
		}
	}
	return nil
}

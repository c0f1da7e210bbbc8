package paste

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nbsp is the whole content of a spacing paragraph.
const nbsp = "\u00a0"

// Tree is the document every stage receives and returns. It is built fresh
// from the pasted markup for each run and never shared between runs.
type Tree struct {
	root *html.Node
	doc  *goquery.Document
}

// parseTree parses markup the way an editable surface would: as the inner
// content of a detached <div>, without an implied html/head/body.
func parseTree(markup string) (*Tree, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Tree{root: root, doc: goquery.NewDocumentFromNode(root)}, nil
}

// Find returns the descendants of the root matching selector, in document order.
func (t *Tree) Find(selector string) *goquery.Selection {
	return t.doc.Find(selector)
}

// Paragraphs returns every paragraph in document order, nested ones included.
func (t *Tree) Paragraphs() []*html.Node {
	return t.doc.Find("p").Nodes
}

// HTML serializes the children of the root. Non-breaking spaces are written
// as &nbsp; so spacing paragraphs read as <p>&nbsp;</p>.
func (t *Tree) HTML() (string, error) {
	out, err := t.doc.Html()
	if err != nil {
		return "", err
	}
	out = strings.ReplaceAll(out, nbsp, "&nbsp;")
	return strings.Trim(out, " \t\r\n"), nil
}

// Text returns the rendered text of the whole tree.
func (t *Tree) Text() string {
	return t.doc.Text()
}

// walk visits n and its descendants depth first. The callback may detach
// the node it is given; the walk continues with the next sibling captured
// beforehand.
func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		walk(c, fn)
		fn(c)
		c = next
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

// isSpace matches the characters a browser trims from text content.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimmedText(n *html.Node) string {
	return strings.TrimFunc(textContent(n), isSpace)
}

func isBlank(n *html.Node) bool {
	return trimmedText(n) == ""
}

// isSpacer reports whether p is a spacing paragraph: a single text child
// holding exactly one non-breaking space.
func isSpacer(p *html.Node) bool {
	c := p.FirstChild
	return c != nil && c == p.LastChild && c.Type == html.TextNode && c.Data == nbsp
}

func isParagraph(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.P
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// unwrapNode replaces n with its children, keeping their order.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// retag turns n into an attribute-free element of kind a, keeping its children.
func retag(n *html.Node, a atom.Atom) {
	n.Data = a.String()
	n.DataAtom = a
	n.Namespace = ""
	n.Attr = nil
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

// adoptChildren moves every child of from to the end of to.
func adoptChildren(to, from *html.Node) {
	for c := from.FirstChild; c != nil; c = from.FirstChild {
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}

func newSpacer() *html.Node {
	p := newElement(atom.P)
	p.AppendChild(&html.Node{Type: html.TextNode, Data: nbsp})
	return p
}

// mergeText joins adjacent text siblings so the tree matches what a
// reparse of its serialization produces.
func mergeText(n *html.Node) int {
	merged := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		for c.Type == html.TextNode && c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
			next := c.NextSibling
			c.Data += next.Data
			n.RemoveChild(next)
			merged++
		}
		if c.Type == html.ElementNode {
			merged += mergeText(c)
		}
	}
	return merged
}

// blockTags are children that cannot live inside a paragraph without the
// parser closing it on reparse.
var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Details: true, atom.Div: true, atom.Dl: true, atom.Fieldset: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.Table: true, atom.Ul: true,
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.DataAtom] {
			return true
		}
	}
	return false
}

package paste

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// headOnlyTags are document-head elements the clipboard carries along with
// a fragment, e.g. the leading <meta charset> of a browser copy.
const headOnlyTags = "meta, title, style, link, script"

// unwrapWrappers replaces every foreign wrapper with its children, drops
// document-head elements and, when configured, comments left by the
// source editor.
func (c *Cleaner) unwrapWrappers(t *Tree, result *Result) *Tree {
	t.Find(headOnlyTags).Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		result.Stats.RecordRemoval(n.Data)
		removeNode(n)
	})

	for _, selector := range c.config.WrapperSelectors {
		t.Find(selector).Each(func(_ int, s *goquery.Selection) {
			unwrapNode(s.Nodes[0])
			result.Stats.WrappersUnwrapped++
		})
	}

	if c.config.StripComments {
		walk(t.root, func(n *html.Node) {
			if n.Type == html.CommentNode {
				removeNode(n)
				result.Stats.CommentsRemoved++
			}
		})
	}

	c.debug("unwrap", "wrappers", result.Stats.WrappersUnwrapped, "comments", result.Stats.CommentsRemoved)
	return t
}

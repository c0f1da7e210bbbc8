package paste

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// stripStyles removes every style attribute, plus the legacy presentational
// attributes editors leave on links.
func (c *Cleaner) stripStyles(t *Tree, result *Result) *Tree {
	t.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		s.RemoveAttr("style")
		result.Stats.AttributesRemoved++
	})

	t.Find("a").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range c.config.AnchorAttributes {
			if _, ok := s.Attr(attr); ok {
				s.RemoveAttr(attr)
				result.Stats.AttributesRemoved++
			}
		}
	})

	c.debug("styles", "attributes_removed", result.Stats.AttributesRemoved)
	return t
}

// flattenInlineWrappers removes every <span>, leaving its children in place.
// Adjacent text left behind is merged so later stages see one text node
// per run of text, as they would after a reparse.
func (c *Cleaner) flattenInlineWrappers(t *Tree, result *Result) *Tree {
	t.Find("span").Each(func(_ int, s *goquery.Selection) {
		unwrapNode(s.Nodes[0])
		result.Stats.InlineWrappersRemoved++
	})
	mergeText(t.root)

	c.debug("flatten", "spans", result.Stats.InlineWrappersRemoved)
	return t
}

// removeAttrs deletes the named attributes from n and returns how many it found.
func removeAttrs(n *html.Node, names []string) int {
	removed := 0
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if hasName(names, a.Key) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
	return removed
}

func hasName(names []string, key string) bool {
	for _, name := range names {
		if name == key {
			return true
		}
	}
	return false
}

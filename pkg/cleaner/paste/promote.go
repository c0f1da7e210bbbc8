package paste

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

var (
	boldStyle   = regexp.MustCompile(`(?i)font-weight\s*:\s*(700|bold)`)
	italicStyle = regexp.MustCompile(`(?i)font-style\s*:\s*italic`)
)

// promoteStyles turns bold and italic style declarations into <strong> and
// <em>. An element that is both becomes <strong><em>...</em></strong>.
// Elements with neither keep their style for the stripper to remove.
func (c *Cleaner) promoteStyles(t *Tree, result *Result) *Tree {
	t.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		bold := boldStyle.MatchString(style)
		italic := italicStyle.MatchString(style)

		n := s.Nodes[0]
		switch {
		case bold && italic:
			em := newElement(atom.Em)
			adoptChildren(em, n)
			retag(n, atom.Strong)
			n.AppendChild(em)
			result.Stats.PromotedBoldItalic++
		case bold:
			retag(n, atom.Strong)
			result.Stats.PromotedBold++
		case italic:
			retag(n, atom.Em)
			result.Stats.PromotedItalic++
		}
	})

	c.debug("promote",
		"bold", result.Stats.PromotedBold,
		"italic", result.Stats.PromotedItalic,
		"both", result.Stats.PromotedBoldItalic)
	return t
}

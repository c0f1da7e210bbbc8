package paste

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// normalizeStructure reduces block markup to plain paragraphs.
//
// Line breaks are dropped unconditionally: pasted <br> runs are spacing
// noise, and explicit spacing paragraphs are added later. Divs with text
// become paragraphs; a div that holds block children is unwrapped instead,
// since a paragraph cannot contain them. Inline content next to those
// blocks is wrapped in its own paragraph first.
func (c *Cleaner) normalizeStructure(t *Tree, result *Result) *Tree {
	t.Find("br").Each(func(_ int, s *goquery.Selection) {
		removeNode(s.Nodes[0])
		result.Stats.RecordRemoval("br")
	})

	t.Find("div").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		switch {
		case isBlank(n):
			removeNode(n)
			result.Stats.RecordRemoval("div")
		case hasBlockChild(n):
			result.Stats.BlocksConverted += wrapInlineRuns(n)
			unwrapNode(n)
			result.Stats.RecordRemoval("div")
		default:
			retag(n, atom.P)
			result.Stats.BlocksConverted++
		}
	})

	t.Find("p").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range c.config.ParagraphAttributes {
			if _, ok := s.Attr(attr); ok {
				s.RemoveAttr(attr)
				result.Stats.AttributesRemoved++
			}
		}
	})

	c.debug("structure", "divs_converted", result.Stats.BlocksConverted, "removed", result.Stats.TotalElementsRemoved())
	return c.removeEmptyParagraphs(t, result)
}

// removeEmptyParagraphs drops paragraphs without visible text. A paragraph
// holding exactly one non-breaking space is an intentional spacer and stays.
func (c *Cleaner) removeEmptyParagraphs(t *Tree, result *Result) *Tree {
	for _, p := range t.Paragraphs() {
		if isBlank(p) && !isSpacer(p) {
			removeNode(p)
			result.Stats.EmptyParagraphsRemoved++
		}
	}
	return t
}

// wrapInlineRuns moves each run of consecutive non-block children of n into
// a new paragraph and returns how many paragraphs it made. Runs holding
// only whitespace are left alone.
func wrapInlineRuns(n *html.Node) int {
	made := 0
	var run []*html.Node

	flush := func(before *html.Node) {
		if len(run) == 0 {
			return
		}
		visible := false
		for _, c := range run {
			if !isBlank(c) {
				visible = true
				break
			}
		}
		if visible {
			p := newElement(atom.P)
			n.InsertBefore(p, before)
			for _, c := range run {
				n.RemoveChild(c)
				p.AppendChild(c)
			}
			made++
		}
		run = run[:0]
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && blockTags[c.DataAtom] {
			flush(c)
		} else {
			run = append(run, c)
		}
		c = next
	}
	flush(nil)
	return made
}

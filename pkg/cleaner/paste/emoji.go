package paste

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

// emojiRanges is an allow-list of Unicode blocks treated as emoji at the
// start of a paragraph.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F300, 0x1F5FF}, // Miscellaneous Symbols and Pictographs
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F1E0, 0x1F1FF}, // Regional indicators (flags)
	{0x2600, 0x26FF},   // Miscellaneous Symbols
	{0x2700, 0x27BF},   // Dingbats
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// startsWithEmoji reports whether the trimmed text of p begins with an emoji.
func startsWithEmoji(p *html.Node) bool {
	r, _ := utf8.DecodeRuneInString(trimmedText(p))
	return isEmoji(r)
}

// normalizeEmojiSpacing leaves exactly one plain space after a leading
// emoji and returns the paragraphs that belong to a run of at least
// EmojiListMinRun emoji-led paragraphs. Spacing paragraphs inside a run are
// skipped over; any other paragraph ends it.
func (c *Cleaner) normalizeEmojiSpacing(t *Tree, result *Result) (*Tree, []*html.Node) {
	paragraphs := t.Paragraphs()
	led := make([]bool, len(paragraphs))
	for i, p := range paragraphs {
		led[i] = startsWithEmoji(p)
	}

	var items []*html.Node
	for i, p := range paragraphs {
		if !led[i] {
			continue
		}
		if c.fixEmojiSpacing(p) {
			result.Stats.EmojiSpacingFixed++
		}
		if c.emojiRunLength(paragraphs, led, i) >= c.config.EmojiListMinRun {
			items = append(items, p)
		}
	}

	c.debug("emoji", "spacing_fixed", result.Stats.EmojiSpacingFixed, "list_items", len(items))
	return t, items
}

// emojiRunLength counts the emoji-led paragraphs in the run containing
// paragraphs[i], walking outwards in both directions.
func (c *Cleaner) emojiRunLength(paragraphs []*html.Node, led []bool, i int) int {
	count := 1
	for j := i - 1; j >= 0; j-- {
		if led[j] {
			count++
		} else if !isSpacer(paragraphs[j]) {
			break
		}
	}
	for j := i + 1; j < len(paragraphs); j++ {
		if led[j] {
			count++
		} else if !isSpacer(paragraphs[j]) {
			break
		}
	}
	return count
}

// fixEmojiSpacing rewrites the first text node of p so the leading emoji
// is followed by a single space. An existing list indent is kept in front.
// It reports whether the text changed.
func (c *Cleaner) fixEmojiSpacing(p *html.Node) bool {
	first := p.FirstChild
	if first == nil || first.Type != html.TextNode {
		return false
	}

	indent := c.config.EmojiIndent
	body := strings.TrimPrefix(first.Data, indent)
	prefix := first.Data[:len(first.Data)-len(body)]

	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(body, -1)
	r, _ := utf8.DecodeRuneInString(cluster)
	if !isEmoji(r) {
		return false
	}

	fixed := prefix + cluster + " " + strings.TrimLeftFunc(rest, isSpace)
	if fixed == first.Data {
		return false
	}
	first.Data = fixed
	return true
}

// indentEmojiList prepends the list indent to every item that does not
// already start with it.
func (c *Cleaner) indentEmojiList(t *Tree, items []*html.Node, result *Result) *Tree {
	indent := c.config.EmojiIndent
	for _, p := range items {
		result.Stats.EmojiListItems++

		first := p.FirstChild
		switch {
		case first != nil && first.Type == html.TextNode && strings.HasPrefix(first.Data, indent):
			// Already indented by an earlier run.
		case first != nil && first.Type == html.TextNode:
			first.Data = indent + first.Data
		default:
			p.InsertBefore(&html.Node{Type: html.TextNode, Data: indent}, first)
		}
	}

	c.debug("emoji_list", "items", result.Stats.EmojiListItems)
	return t
}

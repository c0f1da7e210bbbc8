package paste

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	leftDouble  = '“'
	rightDouble = '”'
	leftSingle  = '‘'
	rightSingle = '’'
)

// curlQuotes rewrites straight quotes in every text node. Each mark is
// classified from its neighbours inside the same text node only; a quote
// right next to an element boundary sees the boundary as the start or end
// of the text.
func (c *Cleaner) curlQuotes(t *Tree, result *Result) *Tree {
	walk(t.root, func(n *html.Node) {
		if n.Type != html.TextNode || !strings.ContainsAny(n.Data, `"'`) {
			return
		}
		curled, count := curl(n.Data)
		n.Data = curled
		result.Stats.QuotesCurled += count
	})

	c.debug("quotes", "curled", result.Stats.QuotesCurled)
	return t
}

// curl converts the straight quotes in s and returns how many it changed.
func curl(s string) (string, int) {
	runes := []rune(s)
	out := make([]rune, len(runes))
	count := 0

	for i, r := range runes {
		var before, after rune
		if i > 0 {
			before = runes[i-1]
		}
		if i < len(runes)-1 {
			after = runes[i+1]
		}

		switch r {
		case '"':
			if i == 0 || opensQuote(before) {
				r = leftDouble
			} else {
				r = rightDouble
			}
			count++
		case '\'':
			switch {
			case isASCIILetter(before) && isASCIILetter(after):
				r = rightSingle // contraction or possessive
			case i == 0 || opensQuote(before):
				r = leftSingle
			default:
				r = rightSingle
			}
			count++
		}
		out[i] = r
	}

	return string(out), count
}

// opensQuote reports whether a quote following r starts a quotation.
func opensQuote(r rune) bool {
	switch r {
	case '(', '[', '{':
		return true
	}
	return isSpace(r)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

package paste

// addParagraphSpacing inserts a spacing paragraph after every content
// paragraph except the last, unless the next element is already a spacer
// or an empty paragraph. Spacers themselves never get another spacer.
func (c *Cleaner) addParagraphSpacing(t *Tree, result *Result) *Tree {
	paragraphs := t.Paragraphs()
	for i, p := range paragraphs {
		if i == len(paragraphs)-1 {
			break
		}
		if isSpacer(p) {
			continue
		}

		next := nextElementSibling(p)
		if isParagraph(next) && (isSpacer(next) || isBlank(next)) {
			continue
		}

		p.Parent.InsertBefore(newSpacer(), p.NextSibling)
		result.Stats.SpacersInserted++
	}

	c.debug("spacing", "inserted", result.Stats.SpacersInserted)
	return t
}

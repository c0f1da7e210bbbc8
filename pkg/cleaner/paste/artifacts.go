package paste

// cleanArtifacts strips internal attributes from paragraphs. Spacing
// paragraphs lose every attribute.
func (c *Cleaner) cleanArtifacts(t *Tree, result *Result) *Tree {
	for _, p := range t.Paragraphs() {
		if isSpacer(p) {
			result.Stats.AttributesRemoved += len(p.Attr)
			p.Attr = nil
			continue
		}
		result.Stats.AttributesRemoved += removeAttrs(p, c.config.ArtifactAttributes)
	}

	c.debug("artifacts", "attributes_removed", result.Stats.AttributesRemoved)
	return t
}

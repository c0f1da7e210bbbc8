package paste

// generateOutput serializes the tree into result. If serialization fails
// the original markup is returned with a warning.
func (c *Cleaner) generateOutput(t *Tree, original string, result *Result) {
	markup, err := t.HTML()
	if err != nil {
		result.Content = original
		result.HTML = original
		result.AddWarning("output", "HTML render failed, returning original", err.Error())
		result.Stats.OutputBytes = len(original)
		return
	}

	result.HTML = markup
	result.Text = t.Text()

	switch c.config.Output {
	case OutputText:
		result.Content = result.Text
	default:
		result.Content = result.HTML
	}
	result.Stats.OutputBytes = len(result.Content)
}

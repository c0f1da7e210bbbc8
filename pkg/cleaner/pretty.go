package cleaner

import "github.com/yosssi/gohtml"

// PrettyCleaner indents HTML one element per line for reading and diffing.
// The indentation adds whitespace between tags, so its output is for
// people, not for pasting.
type PrettyCleaner struct{}

// NewPretty creates a new HTML formatter.
func NewPretty() *PrettyCleaner {
	return &PrettyCleaner{}
}

// Clean formats the markup.
func (c *PrettyCleaner) Clean(html string) (string, error) {
	return gohtml.Format(html), nil
}

// Name returns the cleaner type.
func (c *PrettyCleaner) Name() string {
	return "pretty"
}

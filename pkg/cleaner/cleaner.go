// Package cleaner defines the interface shared by the content cleaners and
// the helpers that compose them.
//
// The paste subpackage holds the HubSpot normalization pipeline; this
// package adds format conversions that run after it, such as Markdown.
package cleaner

// Cleaner transforms pasted content into another representation.
type Cleaner interface {
	// Clean transforms the input. The output format depends on the
	// implementation (HTML, plain text, Markdown).
	Clean(content string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

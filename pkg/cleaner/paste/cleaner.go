package paste

import (
	"strings"
	"time"

	"github.com/jmylchreest/pasteclean/internal/logger"
)

// Cleaner normalizes pasted rich text for HubSpot.
// It implements the cleaner.Cleaner interface and is safe for concurrent
// use: every call builds and owns its own tree.
type Cleaner struct {
	config *Config
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{
		config: config,
	}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "paste"
}

// IsBlank reports whether markup has no content worth cleaning. Callers
// show their empty state for blank input instead of running the pipeline.
func IsBlank(markup string) bool {
	return strings.TrimSpace(markup) == ""
}

// Clean runs the pipeline and returns the content in the configured format.
// This method implements the cleaner.Cleaner interface and never fails:
// unparseable input is returned unchanged.
func (c *Cleaner) Clean(markup string) (string, error) {
	return c.CleanWithStats(markup).Content, nil
}

// CleanWithStats runs the pipeline and returns the cleaned markup, its
// plain-text projection and detailed stats.
func (c *Cleaner) CleanWithStats(markup string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(markup)

	if IsBlank(markup) {
		result.Skipped = true
		result.Stats.TotalDuration = time.Since(startTime)
		return result
	}

	parseStart := time.Now()
	tree, err := parseTree(strings.TrimSpace(markup))
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		// Graceful degradation: return original content with warning
		result.Content = markup
		result.HTML = markup
		result.AddWarning("parse", "HTML parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(markup)
		result.Stats.TotalDuration = time.Since(startTime)
		return result
	}

	transformStart := time.Now()
	tree = c.transform(tree, result)
	result.Stats.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	c.generateOutput(tree, markup, result)
	result.Stats.OutputDuration = time.Since(outputStart)

	result.Stats.TotalDuration = time.Since(startTime)
	return result
}

// transform threads the tree through every stage. Order matters: each
// stage relies on what the previous ones removed or created.
func (c *Cleaner) transform(t *Tree, result *Result) *Tree {
	// 1. Foreign wrappers go first so their content takes part in
	// paragraph conversion.
	t = c.unwrapWrappers(t, result)

	// 2. Read bold/italic out of style declarations while the styled
	// elements still exist.
	t = c.promoteStyles(t, result)

	// 3. Line breaks, divs, paragraph attributes, empty paragraphs.
	t = c.normalizeStructure(t, result)

	// 4. Every remaining style attribute.
	t = c.stripStyles(t, result)

	// 5. Generic spans; strong/em nested inside them survive.
	t = c.flattenInlineWrappers(t, result)

	// 5.5 Flattening can empty a paragraph.
	t = c.removeEmptyParagraphs(t, result)

	// 6-7. Emoji spacing, then indentation of the returned list items.
	t, items := c.normalizeEmojiSpacing(t, result)
	t = c.indentEmojiList(t, items, result)

	// 8. Spacing paragraphs between content paragraphs.
	t = c.addParagraphSpacing(t, result)

	// 9. Typographic quotes.
	t = c.curlQuotes(t, result)

	// 10. Leftover internal attributes.
	t = c.cleanArtifacts(t, result)

	result.Stats.Paragraphs = len(t.Paragraphs())
	return t
}

// debug logs a stage summary when the config asks for it.
func (c *Cleaner) debug(stage string, args ...any) {
	if c.config.Debug {
		logger.Debug("paste stage complete", append([]any{"stage", stage}, args...)...)
	}
}

// Package paste converts rich text pasted from word processors and online
// document editors into the restricted HTML subset accepted by the HubSpot
// rich text editor.
//
// The cleaner runs a fixed sequence of stages over one parsed document
// tree. Each stage relies on the invariants left by the ones before it, so
// the order is not configurable; only the vocabulary each stage works with
// (wrapper selectors, attribute lists, indentation) is.
package paste

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// OutputFormat specifies what Clean returns as its content.
type OutputFormat string

const (
	OutputHTML OutputFormat = "html"
	OutputText OutputFormat = "text"
)

// emSpace is U+2003. Three of them render roughly as a 40px list indent.
const emSpace = "\u2003"

// Config defines the vocabulary used by the cleaning stages.
type Config struct {
	// WrapperSelectors match foreign wrapper elements that are replaced by
	// their children. Google Docs wraps every copied fragment in an element
	// whose id starts with "docs-internal-guid".
	WrapperSelectors []string `json:"wrapper_selectors" yaml:"wrapper_selectors" mapstructure:"wrapper_selectors" validate:"required,min=1,dive,required"`

	// StripComments removes HTML comments (<!--StartFragment-->, Word
	// conditional comments) before any structural work.
	StripComments bool `json:"strip_comments" yaml:"strip_comments" mapstructure:"strip_comments"`

	// ParagraphAttributes are removed from every paragraph during
	// structural normalization.
	ParagraphAttributes []string `json:"paragraph_attributes" yaml:"paragraph_attributes" mapstructure:"paragraph_attributes" validate:"dive,required"`

	// AnchorAttributes are legacy presentational attributes removed from
	// links whether or not they also carried a style attribute.
	AnchorAttributes []string `json:"anchor_attributes" yaml:"anchor_attributes" mapstructure:"anchor_attributes" validate:"dive,required"`

	// ArtifactAttributes are stripped from every paragraph at the very end.
	ArtifactAttributes []string `json:"artifact_attributes" yaml:"artifact_attributes" mapstructure:"artifact_attributes" validate:"dive,required"`

	// EmojiListMinRun is the number of consecutive emoji-led paragraphs
	// needed before they are indented as a list.
	EmojiListMinRun int `json:"emoji_list_min_run" yaml:"emoji_list_min_run" mapstructure:"emoji_list_min_run" validate:"gte=2"`

	// EmojiIndent is prepended to emoji list items. HubSpot strips list
	// and margin markup, so indentation is made of whitespace characters
	// that survive.
	EmojiIndent string `json:"emoji_indent" yaml:"emoji_indent" mapstructure:"emoji_indent" validate:"required"`

	// Output selects the content returned by Clean: html or text.
	Output OutputFormat `json:"output" yaml:"output" mapstructure:"output" validate:"oneof=html text"`

	// Debug logs per-stage counters.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the configuration tuned for HubSpot.
func DefaultConfig() *Config {
	return &Config{
		WrapperSelectors: []string{
			`[id^="docs-internal-guid"]`,
		},
		StripComments: true,
		ParagraphAttributes: []string{
			"dir",
			"style",
		},
		AnchorAttributes: []string{
			"style",
			"color",
			"text-decoration",
			"text-decoration-line",
			"text-decoration-skip-ink",
		},
		ArtifactAttributes: []string{
			"data-emoji-list",
			"data-margin-left",
			"data-hsprotectmargin-left",
			"data-hsprotectmarginleft",
			"data-hsprotectleftmargin",
			"data-hsprotectindent",
			"class",
		},
		EmojiListMinRun: 3,
		EmojiIndent:     strings.Repeat(emSpace, 3),
		Output:          OutputHTML,
	}
}

// Merge merges another config into this one.
// Non-zero values from other override this config; attribute and selector
// lists are appended without duplicates.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c
	merged.WrapperSelectors = appendUnique(c.WrapperSelectors, other.WrapperSelectors)
	merged.ParagraphAttributes = appendUnique(c.ParagraphAttributes, other.ParagraphAttributes)
	merged.AnchorAttributes = appendUnique(c.AnchorAttributes, other.AnchorAttributes)
	merged.ArtifactAttributes = appendUnique(c.ArtifactAttributes, other.ArtifactAttributes)

	if other.StripComments {
		merged.StripComments = true
	}
	if other.EmojiListMinRun > 0 {
		merged.EmojiListMinRun = other.EmojiListMinRun
	}
	if other.EmojiIndent != "" {
		merged.EmojiIndent = other.EmojiIndent
	}
	if other.Output != "" {
		merged.Output = other.Output
	}
	if other.Debug {
		merged.Debug = true
	}

	return &merged
}

func appendUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if !seen[s] {
				out = append(out, s)
				seen[s] = true
			}
		}
	}
	return out
}

var validate = validator.New()

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", e.Namespace(), formatValidationError(e)))
	}
	return fmt.Errorf("invalid cleaner config: %s", strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

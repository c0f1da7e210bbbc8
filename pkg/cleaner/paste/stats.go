package paste

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures what the cleaner did during one run.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Elements dropped outright, by tag.
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"`

	WrappersUnwrapped      int `json:"wrappers_unwrapped" yaml:"wrappers_unwrapped"`
	CommentsRemoved        int `json:"comments_removed" yaml:"comments_removed"`
	PromotedBold           int `json:"promoted_bold" yaml:"promoted_bold"`
	PromotedItalic         int `json:"promoted_italic" yaml:"promoted_italic"`
	PromotedBoldItalic     int `json:"promoted_bold_italic" yaml:"promoted_bold_italic"`
	BlocksConverted        int `json:"blocks_converted" yaml:"blocks_converted"`
	EmptyParagraphsRemoved int `json:"empty_paragraphs_removed" yaml:"empty_paragraphs_removed"`
	AttributesRemoved      int `json:"attributes_removed" yaml:"attributes_removed"`
	InlineWrappersRemoved  int `json:"inline_wrappers_removed" yaml:"inline_wrappers_removed"`
	EmojiSpacingFixed      int `json:"emoji_spacing_fixed" yaml:"emoji_spacing_fixed"`
	EmojiListItems         int `json:"emoji_list_items" yaml:"emoji_list_items"`
	SpacersInserted        int `json:"spacers_inserted" yaml:"spacers_inserted"`
	QuotesCurled           int `json:"quotes_curled" yaml:"quotes_curled"`
	Paragraphs             int `json:"paragraphs" yaml:"paragraphs"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	TransformDuration time.Duration `json:"transform_duration_ns" yaml:"transform_duration_ns"`
	OutputDuration    time.Duration `json:"output_duration_ns" yaml:"output_duration_ns"`
	TotalDuration     time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
	}
}

// RecordRemoval records that an element was dropped.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent())

	fmt.Fprintf(&sb, "Paragraphs: %d (%d spacers inserted, %d empty removed)\n",
		s.Paragraphs, s.SpacersInserted, s.EmptyParagraphsRemoved)

	if len(s.ElementsRemoved) > 0 {
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		fmt.Fprintf(&sb, "Removed by tag: %s\n", strings.Join(parts, ", "))
	}

	if promoted := s.PromotedBold + s.PromotedItalic + s.PromotedBoldItalic; promoted > 0 {
		fmt.Fprintf(&sb, "Promoted styles: %d (bold=%d, italic=%d, both=%d)\n",
			promoted, s.PromotedBold, s.PromotedItalic, s.PromotedBoldItalic)
	}

	if s.AttributesRemoved > 0 {
		fmt.Fprintf(&sb, "Attributes removed: %d\n", s.AttributesRemoved)
	}

	if s.EmojiListItems > 0 || s.EmojiSpacingFixed > 0 {
		fmt.Fprintf(&sb, "Emoji: %d spacing fixed, %d list items\n", s.EmojiSpacingFixed, s.EmojiListItems)
	}

	if s.QuotesCurled > 0 {
		fmt.Fprintf(&sb, "Quotes curled: %s\n", humanize.Comma(int64(s.QuotesCurled)))
	}

	fmt.Fprintf(&sb, "Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.TransformDuration.Round(time.Microsecond),
		s.OutputDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`                         // "parse", "output"
	Message string `json:"message" yaml:"message"`                     // Human-readable description
	Context string `json:"context,omitempty" yaml:"context,omitempty"` // Underlying error text
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning run.
type Result struct {
	// Content is the output in the configured format. On parse errors it
	// holds the original input.
	Content string `json:"content" yaml:"content"`

	// HTML is the cleaned markup.
	HTML string `json:"html" yaml:"html"`

	// Text is the plain-text projection of the cleaned markup.
	Text string `json:"text" yaml:"text"`

	// Skipped is set when the input was blank and the pipeline never ran.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

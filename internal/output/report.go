package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

// Report summarizes one cleaning run.
type Report struct {
	ID          string        `json:"id" yaml:"id"`
	Source      string        `json:"source" yaml:"source"`
	Format      string        `json:"format" yaml:"format"`
	Skipped     bool          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	InputBytes  int           `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int           `json:"output_bytes" yaml:"output_bytes"`
	Reduction   float64       `json:"reduction_percent" yaml:"reduction_percent"`
	Paragraphs  int           `json:"paragraphs" yaml:"paragraphs"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Stats       *paste.Stats  `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings    []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	CleanedAt   time.Time     `json:"cleaned_at" yaml:"cleaned_at"`
}

// NewReport builds a report from a cleaning result. OutputBytes is the
// size of what was finally delivered, which differs from the cleaner's own
// count when a later stage (markdown conversion) rewrote the content.
func NewReport(source, format string, result *paste.Result, delivered string) Report {
	r := Report{
		ID:          uuid.New().String(),
		Source:      source,
		Format:      format,
		Skipped:     result.Skipped,
		OutputBytes: len(delivered),
		Stats:       result.Stats,
		CleanedAt:   time.Now().UTC(),
	}

	if result.Stats != nil {
		r.InputBytes = result.Stats.InputBytes
		r.Paragraphs = result.Stats.Paragraphs
		r.Duration = result.Stats.TotalDuration
	}
	if r.InputBytes > 0 {
		r.Reduction = float64(r.InputBytes-r.OutputBytes) / float64(r.InputBytes) * 100
	}

	for _, w := range result.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

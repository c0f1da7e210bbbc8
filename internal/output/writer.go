// Package output writes cleaning reports: what was cleaned, how much it
// shrank and what went wrong along the way.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents report format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format: %q", name)
	}
}

// Writer serializes reports.
type Writer interface {
	// Write records one report. Streaming formats emit it immediately.
	Write(r Report) error

	// Close emits anything still buffered.
	Close() error
}

// Option configures a writer.
type Option func(*options)

type options struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing of JSON reports.
func WithPretty(enabled bool) Option {
	return func(o *options) {
		o.pretty = enabled
	}
}

// WithIndent sets the JSON indentation string.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// NewWriter creates a report writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	o := &options{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(o)
	}

	switch format {
	case FormatJSON:
		return &jsonWriter{w: w, pretty: o.pretty, indent: o.indent}, nil
	case FormatJSONL:
		return &jsonlWriter{w: w}, nil
	case FormatYAML:
		return newYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

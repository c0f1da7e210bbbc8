package output

import (
	"encoding/json"
	"io"
)

// jsonWriter buffers reports and writes them on Close: a single report as
// an object, several as an array.
type jsonWriter struct {
	w       io.Writer
	pretty  bool
	indent  string
	reports []Report
}

func (w *jsonWriter) Write(r Report) error {
	w.reports = append(w.reports, r)
	return nil
}

func (w *jsonWriter) Close() error {
	var v any = w.reports
	if len(w.reports) == 1 {
		v = w.reports[0]
	}

	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(v)
}

// jsonlWriter writes one compact report per line as soon as it arrives,
// which suits the watcher.
type jsonlWriter struct {
	w io.Writer
}

func (w *jsonlWriter) Write(r Report) error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

func (w *jsonlWriter) Close() error {
	return nil
}

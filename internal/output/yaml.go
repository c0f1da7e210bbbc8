package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlWriter emits every report as its own YAML document.
type yamlWriter struct {
	enc *yaml.Encoder
}

func newYAMLWriter(w io.Writer) *yamlWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &yamlWriter{enc: enc}
}

func (w *yamlWriter) Write(r Report) error {
	return w.enc.Encode(r)
}

func (w *yamlWriter) Close() error {
	return w.enc.Close()
}

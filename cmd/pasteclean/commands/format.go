package commands

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/pasteclean/pkg/cleaner"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

// Output formats accepted by --format.
const (
	formatHTML     = "html"
	formatText     = "text"
	formatMarkdown = "markdown"
)

func parseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case formatHTML, formatText, formatMarkdown:
		return f, nil
	case "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want html, text or markdown)", name)
	}
}

// deliverable converts a paste result into the requested format.
func deliverable(result *paste.Result, format string) (string, error) {
	switch format {
	case formatText:
		return result.Text, nil
	case formatMarkdown:
		return cleaner.NewMarkdown().Clean(result.HTML)
	default:
		return result.HTML, nil
	}
}

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

var statsBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("241")).
	Padding(0, 1)

var (
	statsTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// writeStats prints the run summary. Styling is only applied on a terminal.
func writeStats(w io.Writer, source string, result *paste.Result, styled bool) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", source)
	sb.WriteString(strings.TrimRight(result.Stats.String(), "\n"))

	var warnings []string
	for _, warning := range result.Warnings {
		warnings = append(warnings, "Warning: "+warning.String())
	}

	if !styled {
		fmt.Fprintf(w, "=== pasteclean stats ===\n%s\n", sb.String())
		for _, line := range warnings {
			fmt.Fprintln(w, line)
		}
		return
	}

	fmt.Fprintln(w, statsBox.Render(statsTitle.Render("pasteclean stats")+"\n"+sb.String()))
	for _, line := range warnings {
		fmt.Fprintln(w, warnStyle.Render(line))
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pasteclean/internal/clipboard"
	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/internal/watch"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-clean a file every time it is saved",
	Long: `Watch an HTML file and clean it again on every save.

The result goes to stdout, or replaces the --output file. With --copy each
result is also put on the clipboard, ready to paste.

Examples:
  pasteclean watch draft.html -o clean.html
  pasteclean watch draft.html --copy --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	flags := watchCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", formatHTML, "output format: html, text, markdown")
	flags.BoolP("copy", "c", false, "copy every result to the clipboard")
	flags.Duration("debounce", 150*time.Millisecond, "wait this long after a change before cleaning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()
	formatName, _ := flags.GetString("format")
	format, err := parseFormat(formatName)
	if err != nil {
		return err
	}

	cfg, err := cleanerConfig()
	if err != nil {
		return err
	}

	input := args[0]
	outPath, _ := flags.GetString("output")
	if err := checkDistinct(input, outPath); err != nil {
		return err
	}

	var sinks []watch.Sink
	if outPath == "" || outPath == "-" {
		sinks = append(sinks, watch.WriterSink(os.Stdout))
	} else {
		sinks = append(sinks, watch.FileSink(outPath))
	}
	if copyOut, _ := flags.GetBool("copy"); copyOut {
		sinks = append(sinks, clipboardSink(clipboard.New(), format))
	}

	debounce, _ := flags.GetDuration("debounce")
	htmlCfg := *cfg
	htmlCfg.Output = paste.OutputHTML
	handler := watch.CleanFile(paste.New(&htmlCfg), formatter(format), sinks...)

	w, err := watch.New(input, handler, watch.Options{
		Debounce: debounce,
		Initial:  true,
	})
	if err != nil {
		return err
	}

	logInfo("Watching %s (Ctrl+C to stop)", w.Path())
	return w.Run(ctx)
}

// checkDistinct rejects writing the result over the watched file, which
// would trigger another clean on every write.
func checkDistinct(input, output string) error {
	if output == "" || output == "-" {
		return nil
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("output %s is the watched file", output)
	}
	return nil
}

// formatter converts each watch result the way clean does.
func formatter(format string) watch.Formatter {
	return func(result *paste.Result) (string, error) {
		return deliverable(result, format)
	}
}

// clipboardSink copies the cleaned HTML as rich text with the requested
// format as the plain-text flavour, like clean --copy. A clipboard failure
// is logged and the remaining sinks still run.
func clipboardSink(d *clipboard.Deliverer, format string) watch.Sink {
	return func(ctx context.Context, out watch.Output) error {
		text := out.Content
		if format == formatHTML {
			text = out.Text
		}
		route, err := d.Deliver(ctx, out.HTML, text)
		if err != nil {
			logger.Error("failed to copy to clipboard", "error", err)
			return nil
		}
		logInfo("Copied to clipboard (%s)", route)
		return nil
	}
}

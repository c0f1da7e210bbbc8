package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/pasteclean/internal/clipboard"
	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/internal/output"
	"github.com/jmylchreest/pasteclean/internal/source"
	"github.com/jmylchreest/pasteclean/pkg/cleaner"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file|url|-]",
	Short: "Clean pasted rich text",
	Long: `Clean markup from a file, a URL or stdin and write the result.

Files ending in .md, .docx, .pdf or .txt are converted to HTML first.
With no argument, or "-", the markup is read from stdin.

Examples:
  # Clean a saved Google Docs paste
  pasteclean clean paste.html -o clean.html

  # Clean a published page's article and copy it
  pasteclean clean https://example.com/post --selector article --copy

  # Clean only the article of a full page, indented for review
  pasteclean clean https://example.com/post --article --pretty

  # Plain text out, JSON report to a file
  pasteclean clean paste.html --format text --report json --report-file run.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", formatHTML, "output format: html, text, markdown")
	flags.BoolP("copy", "c", false, "copy the result to the clipboard")
	flags.Bool("no-output", false, "do not write the result (useful with --copy)")
	flags.Bool("pretty", false, "indent HTML output one element per line (for reading, not pasting)")

	// Reporting
	flags.Bool("stats", false, "print a cleaning summary to stderr")
	flags.String("report", "", "write a run report: json, jsonl, yaml")
	flags.String("report-file", "", "report destination (default: stderr)")

	// Fetch settings
	flags.String("selector", "body", "CSS selector for the fragment of a fetched page to clean")
	flags.Bool("article", false, "keep only the main article of a full page before cleaning")
	flags.Duration("timeout", 30*time.Second, "request timeout for URLs")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()
	formatName, _ := flags.GetString("format")
	format, err := parseFormat(formatName)
	if err != nil {
		return err
	}

	var reportFormat output.Format
	if name, _ := flags.GetString("report"); name != "" {
		if reportFormat, err = output.ParseFormat(name); err != nil {
			return err
		}
	}

	cfg, err := cleanerConfig()
	if err != nil {
		return err
	}

	ref := source.Stdin
	if len(args) == 1 {
		ref = args[0]
	}

	selector, _ := flags.GetString("selector")
	timeout, _ := flags.GetDuration("timeout")
	in, err := source.New(source.Config{Selector: selector, Timeout: timeout}).Load(ctx, ref)
	if errors.Is(err, source.ErrEmptyInput) {
		logInfo("Nothing to clean: %s is empty", in.Name)
		return nil
	}
	if err != nil {
		return err
	}

	markup := in.Markup
	if article, _ := flags.GetBool("article"); article {
		if markup, err = extractArticle(in); err != nil {
			return err
		}
	}

	result := paste.New(cfg).CleanWithStats(markup)
	for _, w := range result.Warnings {
		logger.Warn("cleaner warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
	}

	content, err := deliverable(result, format)
	if err != nil {
		return fmt.Errorf("failed to convert to %s: %w", format, err)
	}
	if content, err = postProcess(flags, format).Clean(content); err != nil {
		return err
	}

	if noOutput, _ := flags.GetBool("no-output"); !noOutput {
		path, _ := flags.GetString("output")
		if err := writeContent(path, content); err != nil {
			return err
		}
	}

	if copyOut, _ := flags.GetBool("copy"); copyOut {
		copyResult(ctx, clipboard.New(), result, format, content)
	}

	if showStats, _ := flags.GetBool("stats"); showStats {
		writeStats(os.Stderr, in.Name, result, isTerminal(os.Stderr))
	}

	if reportFormat != "" {
		reportFile, _ := flags.GetString("report-file")
		if err := writeReport(reportFile, reportFormat, output.NewReport(in.Name, format, result, content)); err != nil {
			return err
		}
	}

	return nil
}

// postProcess chains the presentation steps applied to the formatted
// content before it is written.
func postProcess(flags *pflag.FlagSet, format string) *cleaner.ChainCleaner {
	var steps []cleaner.Cleaner
	if pretty, _ := flags.GetBool("pretty"); pretty && format == formatHTML {
		steps = append(steps, cleaner.NewPretty())
	}
	return cleaner.NewChain(steps...)
}

// extractArticle narrows a full page to its main content. Links resolve
// against the page URL when the input was fetched.
func extractArticle(in source.Input) (string, error) {
	cfg := &cleaner.ArticleConfig{}
	if source.IsURL(in.Name) {
		cfg.BaseURL = in.Name
	}
	markup, err := cleaner.NewArticle(cfg).Clean(in.Markup)
	if err != nil {
		return "", fmt.Errorf("failed to extract article: %w", err)
	}
	logger.Debug("article extracted", "source", in.Name, "bytes", len(markup))
	return markup, nil
}

func writeContent(path, content string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logInfo("Written %s to %s", humanize.Bytes(uint64(len(content))), path)
	return nil
}

// copyResult puts the cleaned markup on the clipboard as rich text with
// the requested format as the plain-text flavour. A clipboard that cannot
// be reached is logged; the written output stands.
func copyResult(ctx context.Context, d *clipboard.Deliverer, result *paste.Result, format, content string) {
	text := content
	if format == formatHTML {
		text = result.Text
	}

	route, err := d.Deliver(ctx, result.HTML, text)
	if err != nil {
		logger.Error("failed to copy to clipboard", "error", err)
		return
	}
	logInfo("Copied to clipboard (%s)", route)
}

func writeReport(path string, format output.Format, report output.Report) error {
	dest := os.Stderr
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(dest, format)
	if err != nil {
		return err
	}
	if err := w.Write(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return w.Close()
}

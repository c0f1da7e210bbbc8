package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pasteclean/internal/preview"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local page for pasting and copying cleaned content",
	Long: `Start the preview server.

Paste into the left pane; the cleaned result appears on the right, and a
click copies it as rich text. The same cleaner is available as JSON:

  curl -s localhost:8080/api/clean -d '{"html":"<div>Hi</div>"}'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("addr", "127.0.0.1:8080", "listen address")
	flags.String("max-body", "4MB", "largest accepted paste (e.g. 512KB, 4MB)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := cleanerConfig()
	if err != nil {
		return err
	}
	cfg.Output = paste.OutputHTML

	maxBody, _ := cmd.Flags().GetString("max-body")
	limit, err := humanize.ParseBytes(maxBody)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	logInfo("Preview at http://%s", addr)
	return preview.NewServer(paste.New(cfg), preview.Options{MaxBodyBytes: int64(limit)}).ListenAndServe(ctx, addr)
}

// Package watch re-runs the cleaner whenever the watched input file is saved.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

// Handler processes the file at path after it changed.
type Handler func(ctx context.Context, path string) error

// Options configures a Watcher.
type Options struct {
	// Debounce collapses the burst of events an editor emits for one save.
	Debounce time.Duration

	// Initial runs the handler once before waiting for changes.
	Initial bool
}

// Watcher watches one file.
type Watcher struct {
	path    string
	handle  Handler
	options Options
	log     *slog.Logger
}

// New creates a watcher for path.
func New(path string, handle Handler, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if handle == nil {
		return nil, errors.New("watch handler is nil")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	return &Watcher{
		path:    abs,
		handle:  handle,
		options: opts,
		log:     logger.Component("watch"),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is canceled. Handler failures are logged and the
// watcher keeps going; only setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	// Editors often save by writing a new file and renaming it over the
	// old one, which drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Info("watching", "path", w.path)

	if w.options.Initial {
		w.run(ctx)
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				fire = time.After(w.options.Debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.run(ctx)
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	start := time.Now()
	if err := w.handle(ctx, w.path); err != nil {
		w.log.Error("re-clean failed", "path", w.path, "error", err)
		return
	}
	w.log.Debug("re-cleaned", "path", w.path, "duration", time.Since(start))
}

// relevant reports whether ev means the watched file has new content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// Output is one cleaning run as handed to sinks.
type Output struct {
	HTML    string // cleaned markup
	Text    string // plain-text projection of HTML
	Content string // HTML converted to the requested format
}

// Sink receives every cleaning run.
type Sink func(ctx context.Context, out Output) error

// Formatter converts a cleaning result into the requested format.
type Formatter func(result *paste.Result) (string, error)

// FileSink writes the formatted content to path, replacing it.
func FileSink(path string) Sink {
	return func(_ context.Context, out Output) error {
		return os.WriteFile(path, []byte(out.Content+"\n"), 0o644)
	}
}

// WriterSink writes the formatted content followed by a newline to w.
func WriterSink(w io.Writer) Sink {
	return func(_ context.Context, out Output) error {
		_, err := fmt.Fprintln(w, out.Content)
		return err
	}
}

// CleanFile returns a handler that cleans the file with pc, formats the
// result and passes it to every sink in order. A nil format keeps the
// cleaner's own content. A blank file is skipped.
func CleanFile(pc *paste.Cleaner, format Formatter, sinks ...Sink) Handler {
	return func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if paste.IsBlank(string(data)) {
			logger.Debug("watched file is blank, skipping", "path", path)
			return nil
		}

		result := pc.CleanWithStats(string(data))
		out := Output{HTML: result.HTML, Text: result.Text, Content: result.Content}
		if format != nil {
			if out.Content, err = format(result); err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
		}

		for _, sink := range sinks {
			if err := sink(ctx, out); err != nil {
				return err
			}
		}
		return nil
	}
}

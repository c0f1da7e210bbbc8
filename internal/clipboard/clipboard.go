// Package clipboard puts cleaned content on the system clipboard so it can
// be pasted straight into the editor.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	atotto "github.com/atotto/clipboard"

	"github.com/jmylchreest/pasteclean/internal/logger"
)

// ErrUnavailable is returned when no writer could reach a clipboard.
var ErrUnavailable = errors.New("no clipboard available")

// Writer puts content on a clipboard.
type Writer interface {
	// Name identifies the route in logs and command output.
	Name() string

	// Write stores the content. Rich writers use markup, plain ones text.
	Write(ctx context.Context, markup, text string) error
}

// CommandWriter pipes markup into an external clipboard tool that can
// advertise it as text/html.
type CommandWriter struct {
	name string
	args []string
}

// NewCommandWriter creates a writer that runs name with args.
func NewCommandWriter(name string, args ...string) *CommandWriter {
	return &CommandWriter{name: name, args: args}
}

// Name returns the command name.
func (w *CommandWriter) Name() string {
	return w.name
}

// Write runs the command with markup on stdin.
func (w *CommandWriter) Write(ctx context.Context, markup, _ string) error {
	cmd := exec.CommandContext(ctx, w.name, w.args...)
	cmd.Stdin = strings.NewReader(markup)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", w.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// PlainWriter stores the plain-text projection through atotto/clipboard.
type PlainWriter struct{}

// Name returns "plain".
func (PlainWriter) Name() string {
	return "plain"
}

// Write stores text.
func (PlainWriter) Write(_ context.Context, _, text string) error {
	if atotto.Unsupported {
		return fmt.Errorf("plain: %w", ErrUnavailable)
	}
	return atotto.WriteAll(text)
}

// RichCommand picks the tool for rich HTML on goos. ok is false when none
// is installed.
func RichCommand(goos string, lookPath func(string) (string, error)) (name string, args []string, ok bool) {
	if goos != "linux" && goos != "freebsd" {
		return "", nil, false
	}
	if _, err := lookPath("wl-copy"); err == nil {
		return "wl-copy", []string{"--type", "text/html"}, true
	}
	if _, err := lookPath("xclip"); err == nil {
		return "xclip", []string{"-selection", "clipboard", "-t", "text/html"}, true
	}
	return "", nil, false
}

// Deliverer tries its writers in order until one succeeds.
type Deliverer struct {
	writers []Writer
}

// New returns the platform default: a rich HTML command when one is
// installed, then plain text.
func New() *Deliverer {
	var writers []Writer
	if name, args, ok := RichCommand(runtime.GOOS, exec.LookPath); ok {
		writers = append(writers, NewCommandWriter(name, args...))
	}
	writers = append(writers, PlainWriter{})
	return NewWith(writers...)
}

// NewWith returns a deliverer using the given writers.
func NewWith(writers ...Writer) *Deliverer {
	return &Deliverer{writers: writers}
}

// Deliver stores the content and returns the name of the writer that
// succeeded. When every writer fails the error wraps ErrUnavailable and
// each writer's failure.
func (d *Deliverer) Deliver(ctx context.Context, markup, text string) (string, error) {
	var errs []error
	for _, w := range d.writers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		err := w.Write(ctx, markup, text)
		if err == nil {
			logger.Debug("copied to clipboard", "route", w.Name(), "bytes", len(markup))
			return w.Name(), nil
		}
		logger.Debug("clipboard route failed", "route", w.Name(), "error", err)
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

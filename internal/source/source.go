// Package source loads the markup to clean from a file, stdin or a
// published web page. Markdown, Word, PDF and plain-text files are
// converted to HTML first.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/internal/version"
)

// ErrEmptyInput is returned when the loaded markup has no content.
var ErrEmptyInput = errors.New("input is empty")

// Stdin is the reference that selects standard input.
const Stdin = "-"

// Input is loaded markup and where it came from.
type Input struct {
	Name        string
	Markup      string
	ContentType string
	LoadedAt    time.Time
}

// Config holds configuration for URL loading.
type Config struct {
	UserAgent string
	Timeout   time.Duration

	// Selector picks the fragment of a fetched page to clean. The inner
	// HTML of the first match is used; empty means the whole body.
	Selector string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: version.UserAgent(),
		Timeout:   30 * time.Second,
		Selector:  "body",
	}
}

// Loader resolves input references.
type Loader struct {
	config Config
	stdin  io.Reader
}

// New creates a loader. Zero config fields fall back to DefaultConfig.
func New(cfg Config) *Loader {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Selector == "" {
		cfg.Selector = def.Selector
	}
	return &Loader{config: cfg, stdin: os.Stdin}
}

// WithStdin replaces the reader used for the "-" reference.
func (l *Loader) WithStdin(r io.Reader) *Loader {
	l.stdin = r
	return l
}

// IsURL reports whether ref is fetched over http(s).
func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads ref: "-" or "" for stdin, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, ref string) (Input, error) {
	var (
		in  Input
		err error
	)

	switch {
	case ref == "" || ref == Stdin:
		in, err = l.readStdin()
	case IsURL(ref):
		in, err = l.fetch(ctx, ref)
	default:
		in, err = readFile(ref)
	}
	if err != nil {
		return in, err
	}

	in.LoadedAt = time.Now()
	if strings.TrimSpace(in.Markup) == "" {
		return in, fmt.Errorf("%s: %w", in.Name, ErrEmptyInput)
	}
	logger.Debug("input loaded", "source", in.Name, "bytes", len(in.Markup))
	return in, nil
}

func (l *Loader) readStdin() (Input, error) {
	data, err := io.ReadAll(l.stdin)
	if err != nil {
		return Input{Name: "stdin"}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return Input{Name: "stdin", Markup: string(data), ContentType: "text/html"}, nil
}

// readFile reads path and converts documents that are not HTML.
func readFile(path string) (Input, error) {
	in := Input{Name: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("failed to read input: %w", err)
	}

	convert, contentType := converterFor(path)
	in.ContentType = contentType
	if convert == nil {
		in.Markup = string(data)
		return in, nil
	}

	in.Markup, err = convert(data)
	if err != nil {
		return in, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// fetch retrieves a page with Colly and keeps the inner HTML of the first
// element matching the configured selector.
func (l *Loader) fetch(ctx context.Context, targetURL string) (Input, error) {
	in := Input{Name: targetURL}
	if err := ctx.Err(); err != nil {
		return in, err
	}

	logger.Debug("fetch starting", "url", targetURL, "selector", l.config.Selector)

	c := colly.NewCollector(
		colly.UserAgent(l.config.UserAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(l.config.Timeout)

	var (
		fetchErr error
		matched  bool
	)

	c.OnResponse(func(r *colly.Response) {
		in.ContentType = r.Headers.Get("Content-Type")
		logger.Debug("fetch response received",
			"status", r.StatusCode,
			"content_type", in.ContentType,
			"body_size", len(r.Body))
	})

	c.OnHTML(l.config.Selector, func(e *colly.HTMLElement) {
		if matched {
			return
		}
		markup, err := e.DOM.Html()
		if err != nil {
			fetchErr = fmt.Errorf("failed to read %q: %w", l.config.Selector, err)
			return
		}
		in.Markup = markup
		matched = true
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error (status %d): %w", status, err)
	})

	// OnError carries the status code, so it wins over Visit's own error.
	visitErr := c.Visit(targetURL)
	if fetchErr != nil {
		return in, fetchErr
	}
	if visitErr != nil {
		return in, fmt.Errorf("failed to visit URL: %w", visitErr)
	}
	if !matched {
		logger.Warn("selector matched nothing", "url", targetURL, "selector", l.config.Selector)
	}
	return in, nil
}

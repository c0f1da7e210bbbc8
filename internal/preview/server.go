// Package preview serves a local page for pasting rich text and copying
// back the cleaned result, plus a small JSON API over the same cleaner.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

// Options configures a Server.
type Options struct {
	// MaxBodyBytes caps request bodies. Zero means 4 MiB.
	MaxBodyBytes int64
}

// Server is the preview HTTP server.
type Server struct {
	router   chi.Router
	cleaner  *paste.Cleaner
	log      *slog.Logger
	maxBytes int64
}

// NewServer creates and configures the HTTP server.
func NewServer(cl *paste.Cleaner, opts Options) *Server {
	if cl == nil {
		cl = paste.New(nil)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 4 << 20
	}
	s := &Server{
		cleaner:  cl,
		log:      logger.Component("preview"),
		maxBytes: opts.MaxBodyBytes,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Post("/", s.handlePreview)
	r.Post("/api/clean", s.handleClean)

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("preview server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

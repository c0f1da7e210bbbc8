package preview

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// CleanRequest is the body of POST /api/clean.
type CleanRequest struct {
	HTML string `json:"html"`
}

// CleanResponse is returned by POST /api/clean.
type CleanResponse struct {
	HTML     string          `json:"html"`
	Text     string          `json:"text"`
	Skipped  bool            `json:"skipped,omitempty"`
	Stats    *paste.Stats    `json:"stats"`
	Warnings []paste.Warning `json:"warnings,omitempty"`
}

type pageData struct {
	Input  string
	Output template.HTML
	Text   string
	Result *paste.Result
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{})
}

// handlePreview serves the form post used without JavaScript.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseForm(); err != nil {
		s.bodyError(w, err, false)
		return
	}

	input := r.PostFormValue("html")
	data := pageData{Input: input}
	if !paste.IsBlank(input) {
		result := s.cleaner.CleanWithStats(input)
		data.Result = result
		// Rendered unescaped so the preview shows the formatting.
		data.Output = template.HTML(result.HTML)
		data.Text = result.Text
	}
	s.render(w, data)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

	var req CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.bodyError(w, err, true)
		return
	}

	result := s.cleaner.CleanWithStats(req.HTML)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CleanResponse{
		HTML:     result.HTML,
		Text:     result.Text,
		Skipped:  result.Skipped,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	})
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.Error("render failed", "error", err)
	}
}

func (s *Server) bodyError(w http.ResponseWriter, err error, asJSON bool) {
	status, msg := http.StatusBadRequest, "invalid request body"
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status, msg = http.StatusRequestEntityTooLarge, "request body too large"
	}

	if asJSON {
		jsonError(w, msg, status)
		return
	}
	http.Error(w, msg, status)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("HTTP://example.com/page"))
	assert.False(t, IsURL("paste.html"))
	assert.False(t, IsURL("ftp://example.com"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paste.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>Hello</p>"), 0o644))

	in, err := New(Config{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, in.Name)
	assert.Equal(t, "<p>Hello</p>", in.Markup)
	assert.False(t, in.LoadedAt.IsZero())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(Config{}).Load(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Stdin(t *testing.T) {
	for _, ref := range []string{"", Stdin} {
		l := New(Config{}).WithStdin(strings.NewReader("<div>piped</div>"))
		in, err := l.Load(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, "stdin", in.Name)
		assert.Equal(t, "<div>piped</div>", in.Markup)
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	l := New(Config{}).WithStdin(strings.NewReader(" \n\t"))

	_, err := l.Load(context.Background(), Stdin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoad_URLSelectsFragment(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><nav>menu</nav><article><p>First</p></article><article><p>Second</p></article></body></html>`))
	}))
	defer srv.Close()

	l := New(Config{Selector: "article", UserAgent: "pasteclean-test"})
	in, err := l.Load(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "<p>First</p>", in.Markup)
	assert.Contains(t, in.ContentType, "text/html")
	assert.Equal(t, "pasteclean-test", gotAgent)
}

func TestLoad_URLDefaultsToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>T</title></head><body><p>Body text</p></body></html>`))
	}))
	defer srv.Close()

	in, err := New(Config{}).Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>Body text</p>", in.Markup)
}

func TestLoad_URLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(Config{}).Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoad_URLCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}).Load(ctx, "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_ConvertsByExtension(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		want     string
		wantType string
	}{
		{
			name:     "markdown",
			file:     "notes.md",
			content:  "# Title\n\nSome **bold** text.\n",
			want:     "<h1>Title</h1>\n<p>Some <strong>bold</strong> text.</p>\n",
			wantType: "text/markdown",
		},
		{
			name:     "plain text",
			file:     "notes.txt",
			content:  "First line\nstill first\n\nSecond & last\n",
			want:     "<p>First line still first</p><p>Second &amp; last</p>",
			wantType: "text/plain",
		},
		{
			name:     "html untouched",
			file:     "paste.htm",
			content:  "<div>raw</div>",
			want:     "<div>raw</div>",
			wantType: "text/html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			in, err := New(Config{}).Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Markup)
			assert.Equal(t, tt.wantType, in.ContentType)
		})
	}
}

func TestLoad_InvalidDocuments(t *testing.T) {
	for _, file := range []string{"broken.docx", "broken.pdf"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			require.NoError(t, os.WriteFile(path, []byte("not a real document"), 0o644))

			_, err := New(Config{}).Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), file)
		})
	}
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, "<p>a b</p><p>c</p>", paragraphs("a\r\nb\r\n\r\n\r\n\r\nc"))
	assert.Equal(t, "", paragraphs(" \n\n "))
	assert.Equal(t, "<p>&lt;tag&gt;</p>", paragraphs("<tag>"))
}

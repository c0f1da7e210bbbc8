package clipboard

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	name   string
	err    error
	markup string
	text   string
	calls  int
}

func (f *fakeWriter) Name() string { return f.name }

func (f *fakeWriter) Write(_ context.Context, markup, text string) error {
	f.calls++
	f.markup, f.text = markup, text
	return f.err
}

func TestDeliver_FirstWriterWins(t *testing.T) {
	rich := &fakeWriter{name: "rich"}
	plain := &fakeWriter{name: "plain"}

	route, err := NewWith(rich, plain).Deliver(context.Background(), "<p>a</p>", "a")
	require.NoError(t, err)

	assert.Equal(t, "rich", route)
	assert.Equal(t, "<p>a</p>", rich.markup)
	assert.Equal(t, 0, plain.calls)
}

func TestDeliver_FallsBackToPlain(t *testing.T) {
	rich := &fakeWriter{name: "rich", err: errors.New("no display")}
	plain := &fakeWriter{name: "plain"}

	route, err := NewWith(rich, plain).Deliver(context.Background(), "<p>a</p>", "a")
	require.NoError(t, err)

	assert.Equal(t, "plain", route)
	assert.Equal(t, "a", plain.text)
}

func TestDeliver_AllFail(t *testing.T) {
	rich := &fakeWriter{name: "rich", err: errors.New("no display")}
	plain := &fakeWriter{name: "plain", err: errors.New("no xsel")}

	_, err := NewWith(rich, plain).Deliver(context.Background(), "<p>a</p>", "a")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "no display")
	assert.Contains(t, err.Error(), "no xsel")
}

func TestDeliver_NoWriters(t *testing.T) {
	_, err := NewWith().Deliver(context.Background(), "<p>a</p>", "a")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDeliver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &fakeWriter{name: "rich"}
	_, err := NewWith(w).Deliver(ctx, "<p>a</p>", "a")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, w.calls)
}

func TestRichCommand(t *testing.T) {
	only := func(names ...string) func(string) (string, error) {
		return func(file string) (string, error) {
			for _, n := range names {
				if n == file {
					return "/usr/bin/" + file, nil
				}
			}
			return "", exec.ErrNotFound
		}
	}

	tests := []struct {
		name     string
		goos     string
		lookPath func(string) (string, error)
		want     string
		wantArgs []string
		wantOK   bool
	}{
		{"wayland preferred", "linux", only("wl-copy", "xclip"), "wl-copy", []string{"--type", "text/html"}, true},
		{"xclip", "linux", only("xclip"), "xclip", []string{"-selection", "clipboard", "-t", "text/html"}, true},
		{"nothing installed", "linux", only(), "", nil, false},
		{"darwin has no rich tool", "darwin", only("wl-copy"), "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := RichCommand(tt.goos, tt.lookPath)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCommandWriter_PipesMarkup(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "clip.html")

	w := NewCommandWriter("sh", "-c", "cat > "+out)
	require.NoError(t, w.Write(context.Background(), "<p>rich</p>", "rich"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<p>rich</p>", string(data))
	assert.Equal(t, "sh", w.Name())
}

func TestCommandWriter_Failure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	err := NewCommandWriter("sh", "-c", "echo boom >&2; exit 3").Write(context.Background(), "x", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

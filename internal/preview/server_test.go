package preview

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(nil, Options{MaxBodyBytes: 1024}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestIndex_EmptyState(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(nil, Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<div class="placeholder">Cleaned content will appear here...</div>`)
}

func TestIndex_ScriptLogsFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(nil, Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `console.error("clean request failed:", err)`)
	assert.Contains(t, body, `console.error("copy failed:", richErr, err)`)
}

func TestPreview_FormPost(t *testing.T) {
	form := url.Values{"html": {`<div><span style="font-weight:700">Hello</span></div><div>"World"</div>`}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	NewServer(nil, Options{}).ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "<p><strong>Hello</strong></p><p>&nbsp;</p><p>“World”</p>")
	assert.Contains(t, body, "3 paragraphs, 1 spacers inserted, 2 quotes curled")
	assert.NotContains(t, body, `<div class="placeholder">Cleaned content`)
}

func TestPreview_BlankFormShowsPlaceholder(t *testing.T) {
	form := url.Values{"html": {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	NewServer(nil, Options{}).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Cleaned content will appear here...")
}

func TestAPIClean(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/clean", "application/json",
		strings.NewReader(`{"html":"<p>A</p><br><p>Bob's</p>"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out CleanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "<p>A</p><p>&nbsp;</p><p>Bob’s</p>", out.HTML)
	assert.Equal(t, "A\u00a0Bob’s", out.Text)
	assert.False(t, out.Skipped)
	require.NotNil(t, out.Stats)
	assert.Equal(t, 1, out.Stats.SpacersInserted)
	assert.Equal(t, 1, out.Stats.ElementsRemoved["br"])
}

func TestAPIClean_BlankIsSkipped(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/clean", "application/json", strings.NewReader(`{"html":"  "}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out CleanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Skipped)
	assert.Empty(t, out.HTML)
}

func TestAPIClean_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"invalid json", `{"html":`, http.StatusBadRequest, "invalid request body"},
		{"too large", `{"html":"` + strings.Repeat("x", 2048) + `"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/clean", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.errMsg, body["error"])
		})
	}
}

func TestAPIClean_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(nil, Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clean", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(nil, Options{}).ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package cleaner

import (
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Launch update</title></head>
<body>
<nav><a href="/">Home</a> | <a href="/blog">Blog</a> | <a href="/about">About</a></nav>
<article>
<h1>Launch update</h1>
<p>We are shipping the new editor this week. It replaces the old toolbar with a
single command palette, so every formatting option is a keystroke away. The palette
also remembers what you used last and offers it first.</p>
<p>Migration is automatic. Drafts written in the old editor open in the new one with
their formatting intact, and nothing needs to be exported or re-imported before the
switch. Read the <a href="/docs/editor">editor guide</a> for the full list of shortcuts.</p>
<p>Feedback is welcome on the forum, where the team answers questions every day and
collects the requests that shape the next release of the editor.</p>
</article>
<footer>Copyright Example Inc. All rights reserved.</footer>
</body>
</html>`

func TestArticleCleaner_KeepsMainContent(t *testing.T) {
	c := NewArticle(&ArticleConfig{BaseURL: "https://example.com/blog/launch"})

	got, err := c.Clean(articlePage)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !strings.Contains(got, "single command palette") {
		t.Errorf("article text missing from %q", got)
	}
	if strings.Contains(got, "All rights reserved") {
		t.Errorf("footer boilerplate kept in %q", got)
	}
}

func TestArticleCleaner_InvalidBaseURLIgnored(t *testing.T) {
	c := NewArticle(&ArticleConfig{BaseURL: "not a url"})
	if c.baseURL != nil {
		t.Errorf("baseURL = %v, want nil", c.baseURL)
	}
}

func TestArticleCleaner_Name(t *testing.T) {
	if got := NewArticle(nil).Name(); got != "article" {
		t.Errorf("Name() = %q, want %q", got, "article")
	}
}

func TestPrettyCleaner_OneElementPerLine(t *testing.T) {
	got, err := NewPretty().Clean("<p>a</p><p>&nbsp;</p><p>b</p>")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if lines := strings.Count(got, "\n"); lines < 2 {
		t.Errorf("expected one paragraph per line, got %q", got)
	}
	if !strings.Contains(got, "<p>") {
		t.Errorf("markup lost: %q", got)
	}
}

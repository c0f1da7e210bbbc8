package cleaner

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
)

// ArticleConfig configures the article extractor.
type ArticleConfig struct {
	// CharThreshold is the minimum character count for valid content (default: 500).
	CharThreshold int
	// BaseURL is used for resolving relative links. If empty, links remain relative.
	BaseURL string
}

// ArticleCleaner keeps only the main content of a full web page using
// go-readability, so a published post can be cleaned like a paste.
// Markup without a recognizable article is returned unchanged.
type ArticleCleaner struct {
	baseURL *url.URL
	parser  readability.Parser
}

// NewArticle creates an article extractor. Pass nil for defaults.
func NewArticle(cfg *ArticleConfig) *ArticleCleaner {
	if cfg == nil {
		cfg = &ArticleConfig{}
	}

	parser := readability.NewParser()
	if cfg.CharThreshold > 0 {
		parser.CharThresholds = cfg.CharThreshold
	}

	var base *url.URL
	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err == nil && u.IsAbs() {
			base = u
		}
	}

	return &ArticleCleaner{baseURL: base, parser: parser}
}

// Clean extracts the article markup.
func (c *ArticleCleaner) Clean(htmlContent string) (string, error) {
	article, err := c.parser.Parse(strings.NewReader(htmlContent), c.baseURL)
	if err != nil {
		return "", err
	}
	if article.Node == nil {
		return htmlContent, nil
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil || buf.Len() == 0 {
		return htmlContent, nil
	}
	return buf.String(), nil
}

// Name returns the cleaner type.
func (c *ArticleCleaner) Name() string {
	return "article"
}

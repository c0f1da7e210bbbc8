package source

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
)

// Converter turns a non-HTML document into markup the cleaner accepts.
type Converter func(data []byte) (string, error)

// converterFor picks a converter by file extension. HTML needs none.
func converterFor(path string) (Converter, string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return markdownToHTML, "text/markdown"
	case ".docx":
		return docxToHTML, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pdf":
		return pdfToHTML, "application/pdf"
	case ".txt":
		return textToHTML, "text/plain"
	default:
		return nil, "text/html"
	}
}

func markdownToHTML(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(data, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// docxToHTML emits one paragraph per document paragraph. Headings are
// marked bold through a style declaration so the cleaner promotes them
// like any pasted heading.
func docxToHTML(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if isDocxHeading(para) {
			fmt.Fprintf(&sb, `<p><span style="font-weight:700">%s</span></p>`, html.EscapeString(text))
		} else {
			fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(text))
		}
	}
	return sb.String(), nil
}

func isDocxHeading(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	return strings.HasPrefix(style, "heading") || style == "title"
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// pdfToHTML extracts the plain text of every page. Blank lines separate
// paragraphs; a page break always ends one.
func pdfToHTML(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(paragraphs(text))
	}
	return sb.String(), nil
}

func textToHTML(data []byte) (string, error) {
	return paragraphs(string(data)), nil
}

// paragraphs wraps each blank-line separated block of text in <p>.
// Single newlines inside a block become spaces.
func paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var sb strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.Join(strings.Fields(block), " ")
		if block == "" {
			continue
		}
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(block))
	}
	return sb.String()
}

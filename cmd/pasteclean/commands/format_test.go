package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"html", formatHTML, false},
		{"TEXT", formatText, false},
		{"md", formatMarkdown, false},
		{"markdown", formatMarkdown, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestDeliverable(t *testing.T) {
	result := paste.New(nil).CleanWithStats(`<p>One</p><p>Two</p>`)

	html, err := deliverable(result, formatHTML)
	require.NoError(t, err)
	assert.Equal(t, "<p>One</p><p>&nbsp;</p><p>Two</p>", html)

	text, err := deliverable(result, formatText)
	require.NoError(t, err)
	assert.Equal(t, result.Text, text)

	md, err := deliverable(result, formatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, md, "One")
	assert.NotContains(t, md, "<p>")
}

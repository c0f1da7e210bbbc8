package paste

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.EmojiListMinRun != 3 {
		t.Errorf("EmojiListMinRun = %d, want 3", cfg.EmojiListMinRun)
	}
	if cfg.EmojiIndent != strings.Repeat(emSpace, 3) {
		t.Errorf("EmojiIndent = %q, want three em spaces", cfg.EmojiIndent)
	}
	if cfg.Output != OutputHTML {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputHTML)
	}
	if !cfg.StripComments {
		t.Error("StripComments should default to true")
	}
	if !hasName(cfg.AnchorAttributes, "text-decoration-skip-ink") {
		t.Error("AnchorAttributes should include text-decoration-skip-ink")
	}
	if !hasName(cfg.ArtifactAttributes, "data-emoji-list") || !hasName(cfg.ArtifactAttributes, "class") {
		t.Errorf("ArtifactAttributes missing defaults: %v", cfg.ArtifactAttributes)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "min run too small",
			mutate:  func(c *Config) { c.EmojiListMinRun = 1 },
			wantErr: "EmojiListMinRun must be at least 2",
		},
		{
			name:    "unknown output",
			mutate:  func(c *Config) { c.Output = "pdf" },
			wantErr: "Output must be one of [html text]",
		},
		{
			name:    "no wrapper selectors",
			mutate:  func(c *Config) { c.WrapperSelectors = nil },
			wantErr: "WrapperSelectors is required",
		},
		{
			name:    "empty indent",
			mutate:  func(c *Config) { c.EmojiIndent = "" },
			wantErr: "EmojiIndent is required",
		},
		{
			name:    "blank attribute name",
			mutate:  func(c *Config) { c.ArtifactAttributes = append(c.ArtifactAttributes, "") },
			wantErr: "ArtifactAttributes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(&Config{
		WrapperSelectors:   []string{`[id^="docs-internal-guid"]`, "div.WordSection1"},
		ArtifactAttributes: []string{"lang"},
		EmojiListMinRun:    4,
		Output:             OutputText,
		Debug:              true,
	})

	if merged == base {
		t.Fatal("Merge should return a copy")
	}
	if len(merged.WrapperSelectors) != 2 {
		t.Errorf("WrapperSelectors = %v, want duplicates dropped", merged.WrapperSelectors)
	}
	if !hasName(merged.ArtifactAttributes, "lang") || !hasName(merged.ArtifactAttributes, "class") {
		t.Errorf("ArtifactAttributes = %v, want defaults plus lang", merged.ArtifactAttributes)
	}
	if merged.EmojiListMinRun != 4 || merged.Output != OutputText || !merged.Debug {
		t.Errorf("scalar overrides not applied: %+v", merged)
	}
	if merged.EmojiIndent != base.EmojiIndent {
		t.Error("zero EmojiIndent should keep the base value")
	}
	if base.EmojiListMinRun != 3 || len(base.WrapperSelectors) != 1 {
		t.Error("Merge modified the receiver")
	}
}

func TestConfig_MergeNil(t *testing.T) {
	base := DefaultConfig()
	if got := base.Merge(nil); got != base {
		t.Error("Merge(nil) should return the receiver")
	}
}

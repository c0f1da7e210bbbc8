// Package version carries build metadata for the pasteclean binary.
//
// The variables are set at build time through ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/pasteclean/internal/version.Version=1.2.0 \
//	    -X github.com/jmylchreest/pasteclean/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0" or "1.0.0-dev.5+abc123")
	Version = "dev"

	// Commit is the git commit SHA
	Commit = "unknown"

	// Dirty is "true" when the tree had uncommitted changes
	Dirty = "false"

	// BuildDate is the UTC build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// Info is the structured form printed by `pasteclean version --json`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the version with a -dirty suffix when applicable.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// UserAgent identifies pasteclean when it fetches pages.
func UserAgent() string {
	return fmt.Sprintf("pasteclean/%s (+https://github.com/jmylchreest/pasteclean)", String())
}

// Full returns a multi-line description of the build.
func Full() string {
	info := Get()
	lines := []string{
		"pasteclean " + String(),
		"  Commit:     " + info.Commit,
	}
	if info.Dirty {
		lines = append(lines, "  Dirty:      yes")
	}
	lines = append(lines,
		"  Built:      "+info.BuildDate,
		"  Go version: "+info.GoVersion,
		"  OS/Arch:    "+info.Platform,
	)
	return strings.Join(lines, "\n")
}

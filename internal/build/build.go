// Package build provides build-time information for the CLI application.
// Version is read from the VERSION file or set via ldflags during build.
package build

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Overridable via ldflags:
//
//	-X github.com/vaultcms/create-vault-cms/internal/build.version=x.y.z
//	-X github.com/vaultcms/create-vault-cms/internal/build.commit=abc123
//	-X github.com/vaultcms/create-vault-cms/internal/build.date=2026-01-01
var (
	version string
	commit  string
	date    string
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	return strings.TrimSpace(embeddedVersion)
}

// Commit returns the source commit, or "unknown".
func Commit() string {
	return orUnknown(commit)
}

// Date returns the build date, or "unknown".
func Date() string {
	return orUnknown(date)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Package project locates the software project enclosing a content
// directory and keeps its .gitignore aware of Obsidian workspace files.
package project

import (
	"os"
	"path/filepath"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// MaxRootDepth is the number of directories ResolveRoot inspects,
// counting the start directory.
const MaxRootDepth = 6

// Markers are the entries whose presence identifies a project root.
var Markers = []string{
	"package.json",
	"astro.config.mjs",
	"astro.config.ts",
	".git",
}

// ResolveRoot walks from startDir towards the filesystem root and returns
// the first directory containing one of Markers. The walk stops after
// MaxRootDepth directories or on reaching the filesystem root, which is
// never inspected; in both cases startDir is returned unchanged.
func ResolveRoot(startDir string) string {
	current := filepath.Clean(startDir)

	for depth := 0; depth < MaxRootDepth; depth++ {
		if isFilesystemRoot(current) {
			break
		}
		if marker, ok := findMarker(current); ok {
			debug.Debug("[project] Found %s in %s", marker, current)
			return current
		}
		current = filepath.Dir(current)
	}

	debug.Debug("[project] No project root above %s", startDir)
	return startDir
}

func findMarker(dir string) (string, bool) {
	for _, m := range Markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return m, true
		}
	}
	return "", false
}

func isFilesystemRoot(dir string) bool {
	return filepath.Dir(dir) == dir
}

package provider

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// IsFileURL reports whether raw is a file:// URL naming a local mirror.
func IsFileURL(raw string) bool {
	return strings.HasPrefix(strings.ToLower(raw), "file://")
}

// ParseFileURL returns the local directory named by a file:// URL.
//
//	file:///srv/mirror       -> /srv/mirror
//	file:///C:/mirror        -> C:\mirror (windows)
func ParseFileURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid file URL %q: %w", raw, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a file URL: %s", raw)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file URL must not name a remote host: %s", raw)
	}

	p := u.Path
	if p == "" || p == "/" {
		return "", fmt.Errorf("file URL has no path: %s", raw)
	}
	if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.Clean(filepath.FromSlash(p)), nil
}

// isSubPath checks if child is under parent directory.
func isSubPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)

	if !filepath.IsAbs(parent) || !filepath.IsAbs(child) {
		return false
	}

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

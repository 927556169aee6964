// Package obsidian opens an installed vault in the Obsidian desktop app
// through its obsidian:// URI scheme.
package obsidian

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// Anchors are vault-relative files opened in preference to the bare folder,
// in priority order.
var Anchors = []string{
	"_bases/Home.base",
	"_GUIDE.md",
}

// Runner executes an external command and waits for it to finish.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener dispatches obsidian:// URIs through the host's URI handler.
type Opener struct {
	// GOOS selects the platform command; defaults to runtime.GOOS.
	GOOS string
	// Run executes the command; defaults to exec.CommandContext(...).Run.
	Run Runner
}

// New returns an Opener for the running platform.
func New() *Opener {
	return &Opener{GOOS: runtime.GOOS, Run: execRunner}
}

// Open launches Obsidian on targetPath and returns the URI it dispatched.
// It blocks until the platform launcher exits.
func (o *Opener) Open(ctx context.Context, targetPath string) (string, error) {
	uri := URI(targetPath, FindAnchor(targetPath))
	name, args := Command(o.goos(), uri)
	debug.Debug("[obsidian] Running %s %s", name, strings.Join(args, " "))

	run := o.Run
	if run == nil {
		run = execRunner
	}
	if err := run(ctx, name, args...); err != nil {
		return uri, fmt.Errorf("failed to open Obsidian: %w", err)
	}
	return uri, nil
}

func (o *Opener) goos() string {
	if o.GOOS == "" {
		return runtime.GOOS
	}
	return o.GOOS
}

// FindAnchor returns the first entry of Anchors present under targetPath,
// or "" if none exists.
func FindAnchor(targetPath string) string {
	for _, a := range Anchors {
		if _, err := os.Stat(filepath.Join(targetPath, filepath.FromSlash(a))); err == nil {
			return a
		}
	}
	return ""
}

// URI builds the obsidian://open URI for targetPath. With an anchor the URI
// points at that file; otherwise at the folder with a trailing slash.
// Obsidian requires forward slashes on every platform.
func URI(targetPath, anchor string) string {
	p := strings.ReplaceAll(targetPath, `\`, "/")
	if anchor != "" {
		p += "/" + strings.ReplaceAll(anchor, `\`, "/")
	} else {
		p += "/"
	}
	return "obsidian://open?path=" + encodeComponent(p)
}

// componentUnescaper restores the marks encodeURIComponent leaves as is
// but QueryEscape encodes, and turns '+' into %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s like JavaScript's encodeURIComponent.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Command returns the launcher invocation for uri on goos.
func Command(goos, uri string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", uri}
	case "darwin":
		return "open", []string{uri}
	default:
		return "xdg-open", []string{uri}
	}
}

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// LocalProvider implements Provider for an on-disk mirror of the archive
// host, laid out the same way:
//
//	<Root>/<owner>/<repo>/archive/refs/heads/<branch>.zip
//
// Templates are listed from the presets archive itself.
type LocalProvider struct {
	// Root is the mirror directory.
	Root string

	opts Options
}

// NewLocalProvider creates a provider reading archives below root.
func NewLocalProvider(root string, opts Options) *LocalProvider {
	return &LocalProvider{
		Root: filepath.Clean(root),
		opts: opts,
	}
}

// ArchiveURL returns the mirror path of the archive serving template.
func (p *LocalProvider) ArchiveURL(template string) string {
	if template != "" {
		return p.archivePath(p.opts.PresetsRepo)
	}
	return p.archivePath(p.opts.BaseRepo)
}

func (p *LocalProvider) archivePath(repo string) string {
	return filepath.Join(p.Root, p.opts.Owner, repo, "archive", "refs", "heads", p.opts.Branch+".zip")
}

// Fetch copies the mirrored archive at src to dest. src must lie below Root.
func (p *LocalProvider) Fetch(ctx context.Context, src, dest string) error {
	debug.Debug("[local] Copying archive %s", src)

	if err := ctx.Err(); err != nil {
		return NewFetchError(src, err)
	}
	if !isSubPath(p.Root, src) {
		return NewFetchError(src, fmt.Errorf("path escapes mirror root %s", p.Root))
	}

	in, err := os.Open(src)
	if err != nil {
		return NewFetchError(src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return NewWriteError(src, err)
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dest)
		return NewWriteError(src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return NewWriteError(src, err)
	}

	debug.Debug("[local] Copied %d bytes to %s", n, dest)
	return nil
}

// ListTemplates returns the visible directories directly below the root
// folder of the mirrored presets archive. Any failure yields
// FallbackTemplates.
func (p *LocalProvider) ListTemplates(ctx context.Context) []string {
	path := p.archivePath(p.opts.PresetsRepo)
	debug.Debug("[local] Listing templates from %s", path)

	r, err := zip.OpenReader(path)
	if err != nil {
		debug.Debug("[local] Listing failed, using fallback: %v", err)
		return fallback()
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return archiveTemplates(names)
}

// archiveTemplates picks the second-level directory names below the
// lexically first top-level directory of an archive listing.
func archiveTemplates(entries []string) []string {
	var root string
	for _, e := range entries {
		top, _, ok := strings.Cut(e, "/")
		if !ok || top == "" {
			continue
		}
		if root == "" || top < root {
			root = top
		}
	}
	if root == "" {
		return []string{}
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		parts := strings.Split(e, "/")
		if len(parts) < 3 || parts[0] != root {
			// Files directly below the root are not templates.
			continue
		}
		name := parts[1]
		if name == "" || strings.HasPrefix(name, ".") || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

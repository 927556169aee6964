// Package archive unpacks downloaded repository archives and locates the
// single root folder GitHub wraps them in.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// ErrNoRoot is returned by RootDir when the extracted tree holds no directory.
var ErrNoRoot = errors.New("archive has no root directory")

// Extract unpacks the zip archive at archivePath into destDir, creating it
// if needed. Existing files are overwritten. Entries that would land
// outside destDir are rejected.
func Extract(archivePath, destDir string) error {
	debug.Debug("[archive] Extracting %s -> %s", archivePath, destDir)

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}

	root, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("failed to resolve extraction directory: %w", err)
	}

	for _, f := range r.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
	}

	debug.Debug("[archive] Extracted %d entries", len(r.File))
	return nil
}

// entryPath joins name onto root and rejects paths escaping root.
func entryPath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode&0600 == 0 {
		mode |= 0600
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return out.Close()
}

// RootDir returns the archive root: the first directory, in lexical order,
// at the top level of extractDir.
func RootDir(extractDir string) (string, error) {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", ErrNoRoot
	}

	sort.Strings(dirs)
	if len(dirs) > 1 {
		debug.Debug("[archive] %d top-level directories, using %s", len(dirs), dirs[0])
	}
	return filepath.Join(extractDir, dirs[0]), nil
}

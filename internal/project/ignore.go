package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// IgnoreFileName is the ignore file patched at the project root.
const IgnoreFileName = ".gitignore"

// IgnoreMarker identifies an already patched ignore file.
const IgnoreMarker = ".obsidian/workspace.json"

// IgnorePatch is appended to an existing ignore file.
const IgnorePatch = "\n# Vault CMS / Obsidian\n.obsidian/workspace.json\n.obsidian/workspace-mobile.json\n.ref/\n"

// IgnoreAction describes what PatchIgnoreFile did.
type IgnoreAction string

const (
	IgnoreCreated   IgnoreAction = "created"
	IgnoreUpdated   IgnoreAction = "updated"
	IgnoreUnchanged IgnoreAction = "unchanged"
	// IgnoreSkipped means no file existed and root was external to target.
	IgnoreSkipped IgnoreAction = "skipped"
)

// IsExternalRoot reports whether root is neither target itself nor a path
// prefix of target.
func IsExternalRoot(root, target string) bool {
	root = filepath.Clean(root)
	target = filepath.Clean(target)
	return root != target && !strings.HasPrefix(target, root)
}

// PatchIgnoreFile merges IgnorePatch into root's ignore file. It returns
// the action taken and the ignore file path. Applying it repeatedly never
// duplicates the patch.
func PatchIgnoreFile(root, target string) (IgnoreAction, string, error) {
	path := filepath.Join(root, IgnoreFileName)

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if strings.Contains(string(content), IgnoreMarker) {
			debug.Debug("[project] %s already contains %s", path, IgnoreMarker)
			return IgnoreUnchanged, path, nil
		}
		if err := appendFile(path, IgnorePatch); err != nil {
			return "", path, err
		}
		return IgnoreUpdated, path, nil

	case os.IsNotExist(err):
		if IsExternalRoot(root, target) {
			debug.Debug("[project] Not creating %s outside %s", path, target)
			return IgnoreSkipped, path, nil
		}
		fresh := strings.TrimSpace(IgnorePatch) + "\n"
		if err := os.WriteFile(path, []byte(fresh), 0644); err != nil {
			return "", path, fmt.Errorf("failed to create %s: %w", path, err)
		}
		return IgnoreCreated, path, nil

	default:
		return "", path, fmt.Errorf("failed to read %s: %w", path, err)
	}
}

func appendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return f.Close()
}

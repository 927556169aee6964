package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vaultcms/create-vault-cms/internal/config"
	"github.com/vaultcms/create-vault-cms/internal/debug"
	"github.com/vaultcms/create-vault-cms/internal/project"
	"github.com/vaultcms/create-vault-cms/internal/template/archive"
	"github.com/vaultcms/create-vault-cms/internal/template/provider"
)

// Temporary artifacts created inside the target directory during install.
const (
	TempArchiveName = "vault-cms-temp.zip"
	TempExtractName = ".vault-cms-temp-extract"
)

// InstallOptions contains options for an install.
type InstallOptions struct {
	// TargetDir is the content directory receiving the template files.
	// Relative paths are resolved against BaseDir.
	TargetDir string
	// BaseDir anchors a relative TargetDir. Empty means the working directory.
	BaseDir string
	// Template selects a preset from the presets repository. Empty installs
	// the base repository.
	Template string
	// Provider downloads the archive.
	Provider provider.Provider
}

// InstallResult summarizes a completed install.
type InstallResult struct {
	// TargetDir is the absolute target directory.
	TargetDir string
	// ProjectRoot is the resolved enclosing project directory.
	ProjectRoot string
	// Template is the installed template, empty for the base repository.
	Template string
	// ArchiveURL is the URL the archive was downloaded from.
	ArchiveURL string
	// ArchiveSHA256 is the hex SHA-256 digest of the downloaded archive.
	ArchiveSHA256 string
	// Copied lists the MergeManifest items that were installed.
	Copied []string
	// IgnoreFile is the path of the ignore file considered for patching.
	IgnoreFile string
	// IgnoreAction is what happened to IgnoreFile.
	IgnoreAction project.IgnoreAction
	// NoProjectFound is set when no enclosing project was detected and the
	// target directory itself was used as the project root.
	NoProjectFound bool
}

// Install downloads the template archive, merges MergeManifest items into
// the target directory and patches the project ignore file. Temporary
// artifacts are removed whether or not the install succeeds.
func Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	debug.DebugSection("[app] Install workflow start")
	debug.DebugValue("[app] TargetDir", opts.TargetDir)
	debug.DebugValue("[app] Template", opts.Template)

	if err := validateInstallOptions(opts); err != nil {
		debug.Debug("[app] Install options validation failed: %v", err)
		return nil, err
	}

	targetDir, err := config.ExpandPath(opts.TargetDir, opts.BaseDir)
	if err != nil {
		return nil, NewFilesystemError("failed to resolve target directory", err)
	}
	debug.DebugValue("[app] Resolved target", targetDir)

	// Step 1: ensure target exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, NewFilesystemError("failed to create target directory", err)
	}

	tempZip := filepath.Join(targetDir, TempArchiveName)
	extractDir := filepath.Join(targetDir, TempExtractName)
	defer cleanup(tempZip, extractDir)

	// Step 2: fetch
	archiveURL := opts.Provider.ArchiveURL(opts.Template)
	debug.DebugValue("[app] Archive URL", archiveURL)
	if err := opts.Provider.Fetch(ctx, archiveURL, tempZip); err != nil {
		return nil, NewNetworkError("failed to download archive", err)
	}

	digest, err := hashFile(tempZip)
	if err != nil {
		return nil, NewFilesystemError("failed to read downloaded archive", err)
	}
	debug.DebugValue("[app] Archive SHA-256", digest)

	// Step 3: extract
	if err := archive.Extract(tempZip, extractDir); err != nil {
		return nil, NewFilesystemError("failed to extract archive", err)
	}

	// Step 4: archive root
	innerDir, err := archive.RootDir(extractDir)
	if err != nil {
		if errors.Is(err, archive.ErrNoRoot) {
			return nil, NewArchiveStructureError("Could not find content in the downloaded archive.")
		}
		return nil, NewFilesystemError("failed to inspect extracted archive", err)
	}
	debug.DebugValue("[app] Archive root", innerDir)

	// Step 5: source subtree
	sourceDir := innerDir
	if opts.Template != "" {
		sourceDir = filepath.Join(innerDir, opts.Template)
	}
	if _, err := os.Stat(sourceDir); err != nil {
		if os.IsNotExist(err) {
			return nil, NewArchiveStructureError(fmt.Sprintf("Template %q not found in presets repository.", opts.Template))
		}
		return nil, NewFilesystemError("failed to inspect template directory", err)
	}

	result := &InstallResult{
		TargetDir:     targetDir,
		Template:      opts.Template,
		ArchiveURL:    archiveURL,
		ArchiveSHA256: digest,
	}

	// Step 6: selective copy
	for _, item := range MergeManifest {
		src := filepath.Join(sourceDir, item)
		if _, err := os.Stat(src); err != nil {
			debug.Debug("[app] %s not present in template, skipping", item)
			continue
		}
		if err := copyPath(src, filepath.Join(targetDir, item)); err != nil {
			return nil, NewFilesystemError(fmt.Sprintf("failed to copy %s", item), err)
		}
		result.Copied = append(result.Copied, item)
	}

	// Step 7: project root
	result.ProjectRoot = project.ResolveRoot(targetDir)
	result.NoProjectFound = result.ProjectRoot == targetDir
	debug.DebugValue("[app] Project root", result.ProjectRoot)

	// Step 8: ignore file
	action, ignorePath, err := project.PatchIgnoreFile(result.ProjectRoot, targetDir)
	if err != nil {
		return nil, NewFilesystemError("failed to update .gitignore", err)
	}
	result.IgnoreFile = ignorePath
	result.IgnoreAction = action
	debug.DebugValue("[app] Ignore action", action)

	debug.Debug("[app] Install workflow completed")
	return result, nil
}

// cleanup removes temporary install artifacts, ignoring errors.
func cleanup(paths ...string) {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			debug.Debug("[app] Failed to remove %s: %v", p, err)
		}
	}
}

func validateInstallOptions(opts InstallOptions) error {
	if strings.TrimSpace(opts.TargetDir) == "" {
		return NewValidationError("target directory is required", nil)
	}
	if opts.Provider == nil {
		return NewValidationError("archive provider is required", nil)
	}
	if err := config.ValidateTemplateName(opts.Template); err != nil {
		return NewValidationError("invalid template name", err)
	}
	return nil
}

// InferTemplate reports whether arg names a template in catalog, comparing
// case-insensitively. It returns the lower-cased template name.
func InferTemplate(arg string, catalog []string) (string, bool) {
	if arg == "" {
		return "", false
	}
	lower := strings.ToLower(arg)
	for _, name := range catalog {
		if name == lower {
			return lower, true
		}
	}
	return "", false
}

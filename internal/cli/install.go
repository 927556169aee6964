package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultcms/create-vault-cms/internal/app"
	"github.com/vaultcms/create-vault-cms/internal/config"
	"github.com/vaultcms/create-vault-cms/internal/debug"
	"github.com/vaultcms/create-vault-cms/internal/obsidian"
	"github.com/vaultcms/create-vault-cms/internal/project"
	"github.com/vaultcms/create-vault-cms/internal/template/provider"
)

// Install command flags
var (
	installTemplate string
	installYes      bool
	installNoOpen   bool
	installConfig   string
)

// openVault launches Obsidian on dir.
var openVault = func(ctx context.Context, dir string) (string, error) {
	return obsidian.New().Open(ctx, dir)
}

// templateLister supplies the preset catalog.
type templateLister interface {
	ListTemplates(ctx context.Context) []string
}

// selection is what to install and where.
type selection struct {
	Template string
	Target   string
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return reportFailure(fmt.Errorf("failed to get working directory: %w", err))
	}

	cfg, err := loadConfig(cwd, installConfig)
	if err != nil {
		return reportFailure(err)
	}
	if cfg.Output.NoColor && !globalNoColor {
		globalNoColor = true
		debug.SetNoColor(true)
	}
	if cfg.Output.Quiet {
		globalQuiet = true
	}

	printInfo("Initializing Vault CMS Installer...")

	prov, err := newProvider(cfg)
	if err != nil {
		return reportFailure(err)
	}
	prompter := NewPrompter(installYes)

	target := ""
	if len(args) > 0 {
		target = strings.TrimSpace(args[0])
	}

	sel, err := resolveSelection(ctx, prompter, prov, target, installTemplate, cfg.Install.DefaultTarget)
	if err != nil {
		return reportFailure(err)
	}

	if sel.Template != "" {
		printHeader(fmt.Sprintf("Installing Vault CMS (template: %s)...", sel.Template))
	} else {
		printHeader("Installing Vault CMS...")
	}
	if abs, err := config.ExpandPath(sel.Target, cwd); err == nil {
		printDetail(fmt.Sprintf("Target directory: %s", abs))
	}
	printProgress("Downloading and extracting archive...")

	result, err := app.Install(ctx, app.InstallOptions{
		TargetDir: sel.Target,
		BaseDir:   cwd,
		Template:  sel.Template,
		Provider:  prov,
	})
	if err != nil {
		return reportFailure(err)
	}

	printInstallResult(result, cwd)

	if installNoOpen || cfg.Install.NoOpen {
		return nil
	}
	open, err := prompter.OpenObsidian()
	if err != nil {
		debug.Debug("[cli] Open prompt failed: %v", err)
		return nil
	}
	if open {
		uri, err := openVault(ctx, result.TargetDir)
		printProgress(fmt.Sprintf("Opening Obsidian: %s", uri))
		if err != nil {
			printErrorMsg(err.Error())
		}
	}
	return nil
}

// reportFailure prints the installer failure line and returns errReported
// so Execute exits non-zero without printing it again.
func reportFailure(err error) error {
	printErrorMsg(fmt.Sprintf("Installation failed: %v", err))
	return errReported
}

// loadConfig reads .env from dir, the config file at path (or the default
// location) and environment overrides, then validates the result.
func loadConfig(dir, path string) (*config.Config, error) {
	if err := config.LoadDotEnv(dir); err != nil {
		return nil, err
	}

	loader := config.NewLoader()
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		// An explicit path must exist.
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return nil, err
	}

	config.ApplyEnv(cfg)
	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}

	debug.DebugJSON("[cli] Effective config", redacted(cfg))
	return cfg, nil
}

// redacted returns a copy of cfg safe to log.
func redacted(cfg *config.Config) config.Config {
	c := *cfg
	if c.GitHub.Token != "" {
		c.GitHub.Token = "***"
	}
	return c
}

func newProvider(cfg *config.Config) (provider.Provider, error) {
	token := cfg.GitHub.Token
	if token == "" && !provider.IsFileURL(cfg.GitHub.ArchiveHost) {
		token = ghAuthToken()
	}
	return provider.New(provider.Options{
		ArchiveHost: cfg.GitHub.ArchiveHost,
		APIURL:      cfg.GitHub.APIURL,
		Owner:       cfg.GitHub.Owner,
		BaseRepo:    cfg.GitHub.BaseRepo,
		PresetsRepo: cfg.GitHub.PresetsRepo,
		Branch:      cfg.GitHub.Branch,
		UserAgent:   cfg.GitHub.UserAgent,
		Token:       token,
		Timeout:     time.Duration(cfg.GitHub.Timeout) * time.Second,
	})
}

// resolveSelection settles the template and target from the arguments,
// asking the prompter for whatever is missing. A target naming a known
// template is taken as that template, and the target is then asked for.
// The catalog is only fetched when it is needed.
func resolveSelection(ctx context.Context, p *Prompter, lister templateLister, target, template, defaultTarget string) (selection, error) {
	var catalog []string
	listed := false
	list := func() []string {
		if !listed {
			catalog = lister.ListTemplates(ctx)
			listed = true
			debug.DebugValue("[cli] Templates", catalog)
		}
		return catalog
	}

	sel := selection{Template: template, Target: target}

	if sel.Target != "" && sel.Template == "" {
		if name, ok := app.InferTemplate(sel.Target, list()); ok {
			debug.Debug("[cli] Target %q names a template", sel.Target)
			sel.Template = name
			sel.Target = ""
		}
	}

	if sel.Template == "" && p.Interactive {
		use, err := p.UseTemplate()
		if err != nil {
			return selection{}, err
		}
		if use {
			name, err := p.SelectTemplate(list())
			if err != nil {
				return selection{}, err
			}
			sel.Template = name
		}
	}

	if sel.Target == "" {
		path, err := p.TargetPath(defaultTarget)
		if err != nil {
			return selection{}, err
		}
		sel.Target = path
	}

	return sel, nil
}

func printInstallResult(result *app.InstallResult, cwd string) {
	printDetail(fmt.Sprintf("Archive SHA-256: %s", result.ArchiveSHA256))
	for _, item := range result.Copied {
		printSuccess(fmt.Sprintf("Added %s", item))
	}

	rel := result.IgnoreFile
	if r, err := filepath.Rel(cwd, result.IgnoreFile); err == nil {
		rel = r
	}
	switch result.IgnoreAction {
	case project.IgnoreCreated:
		printSuccess(fmt.Sprintf("Created .gitignore at %s", rel))
	case project.IgnoreUpdated:
		printSuccess(fmt.Sprintf("Updated .gitignore at %s", rel))
	case project.IgnoreSkipped:
		printWarning("Skipped .gitignore (could not find a safe project root)")
	}

	if result.NoProjectFound {
		printInfo("")
		printWarning("Note: No Astro project or package.json found in parent directories.")
		printDetail("Installation completed, but you may need to move these files into your content folder manually.")
	}

	printHeader("Vault CMS is ready!")
}

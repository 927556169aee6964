package cli

import (
	"os/exec"
	"strings"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagTemplate = "template"
	FlagYes      = "yes"
	FlagNoOpen   = "no-open"
	FlagConfig   = "config"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	// Flag descriptions
	DescTemplate = "Preset template to install (e.g. starlight, slate)"
	DescYes      = "Accept defaults without prompting"
	DescNoOpen   = "Do not offer to open the vault in Obsidian"
	DescConfig   = "Path to config file"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress non-error output"
	DescDebug    = "Enable debug logging"
)

// ghAuthToken asks the gh CLI for its stored token. It returns "" when gh is
// not installed or not logged in.
func ghAuthToken() string {
	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}
	output, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		debug.Debug("[cli] gh auth token failed: %v", err)
		return ""
	}
	return strings.TrimSpace(string(output))
}

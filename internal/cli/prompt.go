package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Prompter asks the user for install choices. When not interactive every
// question resolves to its default answer without touching the terminal.
type Prompter struct {
	// Interactive enables terminal prompts.
	Interactive bool
	// AssumeYes records that defaults were accepted explicitly with --yes.
	AssumeYes bool
}

// NewPrompter returns a Prompter that is interactive only when assumeYes
// is false and stdin is a terminal.
func NewPrompter(assumeYes bool) *Prompter {
	return &Prompter{
		Interactive: !assumeYes && stdinIsTerminal(),
		AssumeYes:   assumeYes,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// UseTemplate asks whether to install a preset template. Defaults to no.
func (p *Prompter) UseTemplate() (bool, error) {
	if !p.Interactive {
		return false, nil
	}

	var result bool
	prompt := &survey.Confirm{
		Message: "Would you like to use a preset template (e.g. Starlight, Slate)?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// SelectTemplate asks the user to pick one of catalog.
func (p *Prompter) SelectTemplate(catalog []string) (string, error) {
	if len(catalog) == 0 {
		return "", fmt.Errorf("no templates available")
	}
	if !p.Interactive {
		return catalog[0], nil
	}

	var result string
	prompt := &survey.Select{
		Message: "Select a template:",
		Options: catalog,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// TargetPath asks where to install, suggesting defaultPath.
func (p *Prompter) TargetPath(defaultPath string) (string, error) {
	if !p.Interactive {
		return defaultPath, nil
	}

	var result string
	prompt := &survey.Input{
		Message: "Where should we install Vault CMS?",
		Default: defaultPath,
		Help:    "Path to your site's content folder, relative to the current directory.",
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(notBlank)); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// OpenObsidian asks whether to open the vault. Defaults to yes under --yes;
// without a terminal and without --yes it answers no.
func (p *Prompter) OpenObsidian() (bool, error) {
	if !p.Interactive {
		return p.AssumeYes, nil
	}

	var result bool
	prompt := &survey.Confirm{
		Message: "Would you like to open this folder in Obsidian now?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// notBlank rejects empty or whitespace-only answers.
func notBlank(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

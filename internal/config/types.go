package config

// Config represents the installer configuration.
type Config struct {
	// GitHub configuration for archive downloads and template listing.
	GitHub GitHubConfig `json:"github" yaml:"github"`
	// Install configuration for install defaults.
	Install InstallConfig `json:"install" yaml:"install"`
	// Output configuration for display and logging.
	Output OutputConfig `json:"output" yaml:"output"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token, sent with every request.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// ArchiveHost serves repository archives.
	ArchiveHost string `json:"archive_host" yaml:"archive_host"`
	// APIURL is the GitHub API URL used for template listing.
	APIURL string `json:"api_url" yaml:"api_url"`
	// Owner owns the base and presets repositories.
	Owner string `json:"owner" yaml:"owner"`
	// BaseRepo is installed when no template is chosen.
	BaseRepo string `json:"base_repo" yaml:"base_repo"`
	// PresetsRepo holds one directory per template.
	PresetsRepo string `json:"presets_repo" yaml:"presets_repo"`
	// Branch is the branch whose archive is downloaded.
	Branch string `json:"branch" yaml:"branch"`
	// UserAgent is sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
	// Timeout is the request timeout in seconds.
	Timeout int `json:"timeout" yaml:"timeout"`
}

// InstallConfig represents install defaults.
type InstallConfig struct {
	// DefaultTarget is suggested when prompting for the install path.
	DefaultTarget string `json:"default_target" yaml:"default_target"`
	// NoOpen disables the offer to open the vault in Obsidian.
	NoOpen bool `json:"no_open" yaml:"no_open"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// NoColor disables colored terminal output.
	NoColor bool `json:"no_color" yaml:"no_color"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Token:       "",
			ArchiveHost: "https://github.com",
			APIURL:      "https://api.github.com",
			Owner:       "davidvkimball",
			BaseRepo:    "vault-cms",
			PresetsRepo: "vault-cms-presets",
			Branch:      "master",
			UserAgent:   "vault-cms-installer",
			Timeout:     30,
		},
		Install: InstallConfig{
			DefaultTarget: "src/content",
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "create-vault-cms", "config.json")
}

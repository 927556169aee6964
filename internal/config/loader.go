package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// Environment variables overriding configuration values.
const (
	EnvArchiveHost = "VAULT_CMS_ARCHIVE_HOST"
	EnvAPIURL      = "VAULT_CMS_API_URL"
	EnvOwner       = "VAULT_CMS_OWNER"
	EnvBranch      = "VAULT_CMS_BRANCH"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGHToken     = "GH_TOKEN"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
// JSON files may contain comments and trailing commas; .yaml and .yml files
// are parsed as YAML.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
		}
	default:
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON structure", err)
		}
	}

	// Merge with defaults for any missing fields
	mergeConfig(&cfg, DefaultConfig())

	debug.Debug("[config] Loaded %s", path)
	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		// If file not found, return defaults
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.GitHub.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "github.timeout", "timeout cannot be negative")
	}
	if err := validateArchiveHost("github.archive_host", config.GitHub.ArchiveHost); err != nil {
		return err
	}
	if err := validateBaseURL("github.api_url", config.GitHub.APIURL); err != nil {
		return err
	}
	for field, v := range map[string]string{
		"github.owner":        config.GitHub.Owner,
		"github.base_repo":    config.GitHub.BaseRepo,
		"github.presets_repo": config.GitHub.PresetsRepo,
		"github.branch":       config.GitHub.Branch,
	} {
		if strings.TrimSpace(v) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field, "value cannot be empty")
		}
	}
	return nil
}

// LoadDotEnv loads variables from a .env file in dir if one exists.
// Variables already set in the environment are left untouched.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to load .env file", err)
	}
	debug.Debug("[config] Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides cfg with values from the environment.
// Token priority: GITHUB_TOKEN > GH_TOKEN > config file.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvArchiveHost); v != "" {
		cfg.GitHub.ArchiveHost = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := os.Getenv(EnvOwner); v != "" {
		cfg.GitHub.Owner = v
	}
	if v := os.Getenv(EnvBranch); v != "" {
		cfg.GitHub.Branch = v
	}
	if v := os.Getenv(EnvGitHubToken); v != "" {
		cfg.GitHub.Token = v
	} else if v := os.Getenv(EnvGHToken); v != "" {
		cfg.GitHub.Token = v
	}
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	// GitHub
	if cfg.GitHub.ArchiveHost == "" {
		cfg.GitHub.ArchiveHost = defaults.GitHub.ArchiveHost
	}
	if cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = defaults.GitHub.APIURL
	}
	if cfg.GitHub.Owner == "" {
		cfg.GitHub.Owner = defaults.GitHub.Owner
	}
	if cfg.GitHub.BaseRepo == "" {
		cfg.GitHub.BaseRepo = defaults.GitHub.BaseRepo
	}
	if cfg.GitHub.PresetsRepo == "" {
		cfg.GitHub.PresetsRepo = defaults.GitHub.PresetsRepo
	}
	if cfg.GitHub.Branch == "" {
		cfg.GitHub.Branch = defaults.GitHub.Branch
	}
	if cfg.GitHub.UserAgent == "" {
		cfg.GitHub.UserAgent = defaults.GitHub.UserAgent
	}
	if cfg.GitHub.Timeout == 0 {
		cfg.GitHub.Timeout = defaults.GitHub.Timeout
	}

	// Install
	if cfg.Install.DefaultTarget == "" {
		cfg.Install.DefaultTarget = defaults.Install.DefaultTarget
	}
}

// ExpandPath expands ~ to home directory and evaluates relative paths
// against base. An empty base means the process working directory.
func ExpandPath(path, base string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if base != "" {
		return filepath.Join(base, path), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}

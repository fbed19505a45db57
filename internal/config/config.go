package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lightfastai/hookgate/internal/hooks"
)

const (
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "hookgate.config.yml"
	// SupportedVersion is the currently supported config schema version
	SupportedVersion = 1
)

// Config represents the hookgate.config.yml structure
type Config struct {
	Version int `yaml:"version"`

	// Store is the hook store path relative to the project root
	Store string `yaml:"store,omitempty"`

	// AutoSave persists the registry after every mutating operation
	AutoSave bool `yaml:"autoSave"`

	// EnvFile is a dotenv file whose variables are handed to every hook
	// process, relative to the project root
	EnvFile string `yaml:"envFile,omitempty"`

	// PermissionLevel is the level applied at startup
	PermissionLevel string `yaml:"permissionLevel,omitempty"`

	// DefaultTimeoutSeconds bounds hooks that carry no timeout of their own
	DefaultTimeoutSeconds int `yaml:"defaultTimeoutSeconds,omitempty"`

	// HistoryLimit caps the per-hook execution log
	HistoryLimit int `yaml:"historyLimit,omitempty"`
}

// Default returns the configuration written by 'hookgate init'
func Default() *Config {
	return &Config{
		Version:               SupportedVersion,
		Store:                 filepath.Join(".hookgate", "hooks.json"),
		AutoSave:              true,
		PermissionLevel:       hooks.PermissionWithWarning.String(),
		DefaultTimeoutSeconds: 60,
		HistoryLimit:          hooks.DefaultHistoryLimit,
	}
}

// Level returns the configured permission level
func (c *Config) Level() hooks.PermissionLevel {
	if c.PermissionLevel == "" {
		return hooks.PermissionWithWarning
	}
	return hooks.PermissionLevel(c.PermissionLevel)
}

// DefaultTimeout returns the configured default hook timeout, or zero when
// unset so the manager falls back to its own default
func (c *Config) DefaultTimeout() time.Duration {
	if c.DefaultTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.DefaultTimeoutSeconds) * time.Second
}

// StorePath resolves the hook store path against the project root
func (c *Config) StorePath(projectRoot string) string {
	store := c.Store
	if store == "" {
		store = filepath.Join(".hookgate", "hooks.json")
	}
	if filepath.IsAbs(store) {
		return store
	}
	return filepath.Join(projectRoot, store)
}

// EnvFilePath resolves the hook env file path against the project root;
// empty means no env file is configured
func (c *Config) EnvFilePath(projectRoot string) string {
	if c.EnvFile == "" {
		return ""
	}
	if filepath.IsAbs(c.EnvFile) {
		return c.EnvFile
	}
	return filepath.Join(projectRoot, c.EnvFile)
}

// LoadConfig searches for hookgate.config.yml starting from the current
// directory and walking up the directory tree until it finds the file or
// reaches the root. It returns the parsed config and the absolute path of the
// project root (where the config was found).
func LoadConfig() (*Config, string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfigFrom(currentDir)
}

// LoadConfigFrom walks up from the given directory looking for the config file
func LoadConfigFrom(startDir string) (*Config, string, error) {
	searchDir := startDir
	for {
		configPath := filepath.Join(searchDir, ConfigFileName)

		if _, err := os.Stat(configPath); err == nil {
			config, err := parseConfig(configPath)
			if err != nil {
				return nil, "", fmt.Errorf("failed to parse %s: %w", configPath, err)
			}

			if err := validateConfig(config); err != nil {
				return nil, "", fmt.Errorf("invalid config in %s: %w", configPath, err)
			}

			return config, searchDir, nil
		}

		parentDir := filepath.Dir(searchDir)
		if parentDir == searchDir {
			return nil, "", fmt.Errorf("no %s found in current directory or any parent directory", ConfigFileName)
		}
		searchDir = parentDir
	}
}

// Write saves the config to the given path as YAML
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// parseConfig reads and parses a YAML config file
func parseConfig(path string) (*Config, error) {
	// #nosec G304 - path is from trusted source (config file search)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &config, nil
}

// validateConfig checks that the config has valid structure and values
func validateConfig(config *Config) error {
	if config.Version == 0 {
		return fmt.Errorf("version field is required")
	}
	if config.Version != SupportedVersion {
		return fmt.Errorf("unsupported config version %d (expected %d)", config.Version, SupportedVersion)
	}

	if config.PermissionLevel != "" {
		if _, err := hooks.ParsePermissionLevel(config.PermissionLevel); err != nil {
			return fmt.Errorf("permissionLevel: %w", err)
		}
	}

	if config.DefaultTimeoutSeconds < 0 {
		return fmt.Errorf("defaultTimeoutSeconds must not be negative")
	}
	if config.HistoryLimit < 0 {
		return fmt.Errorf("historyLimit must not be negative")
	}

	return nil
}

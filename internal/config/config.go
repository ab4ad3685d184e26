package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"agentry/internal/logging"
	"agentry/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "agentry" // application name used for config directory

// EnvResourcesDir overrides the configured resource root when set. This is
// the usual way MCP clients point the server at a resource tree without a
// config file.
const EnvResourcesDir = "AGENTRY_RESOURCES_DIR"

// Config holds user configuration for agentry.
type Config struct {
	// ResourcesDir is the root directory all resource kinds live under.
	ResourcesDir string `yaml:"resources_dir"`
	Version      string `yaml:"version"`   // Track config version
	InitTime     int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load resolves the effective configuration. The environment variable wins
// over the config file; with neither present an error asks for setup.
func Load() (*Config, error) {
	if dir := os.Getenv(EnvResourcesDir); dir != "" {
		logging.Debug("Using resources directory from environment", "dir", dir)
		cfg := DefaultConfig()
		cfg.ResourcesDir = fileops.ExpandPath(dir)
		return &cfg, nil
	}

	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		return nil, fmt.Errorf("no configuration found: set %s or run first-time setup", EnvResourcesDir)
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ResourcesDir = fileops.ExpandPath(cfg.ResourcesDir)
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ResourcesDir: filepath.Join(xdg.DataHome, APP_NAME),
		Version:      "1.0",
		InitTime:     0, // Will be set during first save
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

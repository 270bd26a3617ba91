// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mdimage/mdimage/internal/constants"
)

// Loader resolves where configuration files live.
type Loader struct {
	baseDir string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. MDIMAGE_CONFIG environment variable.
//  2. ~/.mdimage in the user home directory.
//
// Without either, ConfigPath is empty and only defaults, environment and
// flags apply.
func NewLoader() *Loader {
	if baseDir := os.Getenv(constants.EnvConfig); baseDir != "" {
		return &Loader{baseDir: baseDir}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &Loader{}
	}
	return &Loader{baseDir: filepath.Join(homeDir, constants.DefaultDir)}
}

// NewLoaderWithDir creates a loader rooted at dir.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{baseDir: dir}
}

// ConfigPath returns the path to the default config file.
func (l *Loader) ConfigPath() string {
	if l.baseDir == "" {
		return ""
	}
	return filepath.Join(l.baseDir, constants.ConfigFile)
}

// Save writes cfg as YAML to path, or to ConfigPath when path is empty.
func (l *Loader) Save(cfg *Config, path string) (string, error) {
	if path == "" {
		path = l.ConfigPath()
	}
	if path == "" {
		return "", fmt.Errorf("no config path: set %s or pass a path", constants.EnvConfig)
	}

	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

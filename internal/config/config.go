// Package config handles the ~/.taskflow directory and the client
// configuration file inside it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StateDirName is the directory taskflow keeps its local state in,
// created under the user's home.
const StateDirName = ".taskflow"

const configFileName = "config.yaml"

const defaultConfigYAML = `# taskflow client configuration
# Base URL of the task-tracking API, including the /api prefix.
api_url: http://localhost:8000/api

# Request timeout in seconds.
timeout_seconds: 30
`

// Config is the client configuration.
type Config struct {
	APIURL         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:         "http://localhost:8000/api",
		TimeoutSeconds: 30,
	}
}

// StateDir returns the ~/.taskflow path, creating it if needed.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, StateDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// Load reads the configuration, writing the default file first when
// none exists so users have something to edit.
func Load() (*Config, error) {
	dir, err := StateDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, configFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte(defaultConfigYAML), 0644); writeErr != nil {
			return nil, fmt.Errorf("failed to write default config: %w", writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = Default().APIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = Default().TimeoutSeconds
	}

	// Environment override for scripted use.
	if url := os.Getenv("TASKFLOW_API_URL"); url != "" {
		cfg.APIURL = url
	}

	return cfg, nil
}

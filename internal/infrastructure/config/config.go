// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for kin configuration.
	DefaultConfigDir = ".kin"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default SQLite database file name.
	DefaultDBFile = "kin.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Env    string       `yaml:"env,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite relational database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values rooted at basePath.
func Default(basePath string) *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Addr: ":8080",
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(basePath, DefaultConfigDir, DefaultDBFile),
		},
	}
}

// Load loads configuration from the .kin directory in the given path.
func Load(basePath string) (*Config, error) {
	// A .env file next to the config is optional
	_ = godotenv.Load(filepath.Join(basePath, ".env"))

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'kin init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default(basePath)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if env := os.Getenv("KIN_ENV"); env != "" {
		c.Env = env
	}
	if addr := os.Getenv("KIN_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("KIN_DB_PATH"); path != "" {
		c.SQLite.Path = path
	}
}

// ConfigDir returns the path to the .kin config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a kin config exists in the given path.
func Exists(basePath string) bool {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	_, err := os.Stat(configFile)
	return err == nil
}

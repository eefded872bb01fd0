package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/owlting/paynow-docs-mcp/internal/docs"
)

// Environment variables that override file configuration.
const (
	EnvEndpoint   = "PAYNOW_DOCS_ENDPOINT"
	EnvLang       = "PAYNOW_DOCS_LANG"
	EnvTimeout    = "PAYNOW_DOCS_TIMEOUT"
	EnvMaxRetries = "PAYNOW_DOCS_MAX_RETRIES"
	EnvLogLevel   = "PAYNOW_DOCS_LOG_LEVEL"
	EnvTransport  = "PAYNOW_DOCS_TRANSPORT"
)

// appName names the per-user config and data directories.
const appName = "paynow-docs-mcp"

// Config represents the complete paynow-docs-mcp configuration.
type Config struct {
	Version int          `yaml:"version" json:"version"`
	Docs    DocsConfig   `yaml:"docs" json:"docs"`
	Server  ServerConfig `yaml:"server" json:"server"`
}

// DocsConfig configures the remote documentation service.
type DocsConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Lang     string `yaml:"lang" json:"lang"`

	// Timeout bounds each HTTP attempt, as a Go duration string (e.g. "30s").
	Timeout string `yaml:"timeout" json:"timeout"`

	// MaxRetries is the number of extra attempts after a failed connection.
	// Zero disables retries; nil keeps the default.
	MaxRetries *int `yaml:"max_retries,omitempty" json:"max_retries,omitempty"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new Config with the built-in defaults.
func NewConfig() *Config {
	retries := docs.DefaultMaxRetries
	return &Config{
		Version: 1,
		Docs: DocsConfig{
			Endpoint:   docs.DefaultEndpoint,
			Lang:       docs.DefaultLang,
			Timeout:    docs.DefaultTimeout.String(),
			MaxRetries: &retries,
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/paynow-docs-mcp/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/paynow-docs-mcp/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", appName, "config.yaml")
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load builds the effective configuration.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/paynow-docs-mcp/config.yaml)
//  3. Explicit config file (path, if non-empty)
//  4. Environment variables (PAYNOW_DOCS_*)
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Docs.Endpoint != "" {
		c.Docs.Endpoint = other.Docs.Endpoint
	}
	if other.Docs.Lang != "" {
		c.Docs.Lang = other.Docs.Lang
	}
	if other.Docs.Timeout != "" {
		c.Docs.Timeout = other.Docs.Timeout
	}
	if other.Docs.MaxRetries != nil {
		n := *other.Docs.MaxRetries
		c.Docs.MaxRetries = &n
	}

	if other.Server.Transport != "" {
		c.Server.Transport = other.Server.Transport
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}
}

// applyEnvOverrides applies PAYNOW_DOCS_* environment variable overrides.
// Unlike file values, a malformed number in the environment is an error.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Docs.Endpoint = v
	}
	if v := os.Getenv(EnvLang); v != "" {
		c.Docs.Lang = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Docs.Timeout = v
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", EnvMaxRetries, v)
		}
		c.Docs.MaxRetries = &n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Server.Transport = v
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Docs.Endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("docs.endpoint must be an absolute URL, got %q", c.Docs.Endpoint)
	}
	if c.Docs.Lang == "" {
		return fmt.Errorf("docs.lang must not be empty")
	}

	timeout, err := time.ParseDuration(c.Docs.Timeout)
	if err != nil {
		return fmt.Errorf("docs.timeout must be a duration like \"30s\", got %q", c.Docs.Timeout)
	}
	if timeout <= 0 {
		return fmt.Errorf("docs.timeout must be positive, got %s", c.Docs.Timeout)
	}

	if c.Docs.MaxRetries != nil && *c.Docs.MaxRetries < 0 {
		return fmt.Errorf("docs.max_retries must be non-negative, got %d", *c.Docs.MaxRetries)
	}

	if strings.ToLower(c.Server.Transport) != "stdio" {
		return fmt.Errorf("server.transport must be 'stdio', got %s", c.Server.Transport)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	return nil
}

// DocsClientConfig converts the docs section into a client configuration.
// It assumes Validate has passed.
func (c *Config) DocsClientConfig() docs.Config {
	cfg := docs.DefaultConfig()
	cfg.Endpoint = c.Docs.Endpoint
	cfg.Lang = c.Docs.Lang
	if d, err := time.ParseDuration(c.Docs.Timeout); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if c.Docs.MaxRetries != nil {
		cfg.MaxRetries = *c.Docs.MaxRetries
		if cfg.MaxRetries == 0 {
			// docs.Config treats zero as "use default"
			cfg.MaxRetries = -1
		}
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

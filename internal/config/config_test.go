package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlting/paynow-docs-mcp/internal/docs"
)

// isolate points the user config at an empty directory and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, env := range []string{EnvEndpoint, EnvLang, EnvTimeout, EnvMaxRetries, EnvLogLevel, EnvTransport} {
		t.Setenv(env, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration
	cfg := NewConfig()

	// Then: defaults reproduce the fixed endpoint behavior
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "https://mcp.owlting.com/paynow-component-docs/get-paynow-component-documentation", cfg.Docs.Endpoint)
	assert.Equal(t, "en", cfg.Docs.Lang)
	assert.Equal(t, "30s", cfg.Docs.Timeout)
	require.NotNil(t, cfg.Docs.MaxRetries)
	assert.Equal(t, 3, *cfg.Docs.MaxRetries)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	// Given: user config, explicit file, and env all set
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "paynow-docs-mcp", "config.yaml"),
		"docs:\n  lang: ja\n  timeout: 10s\nserver:\n  log_level: warn\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "docs:\n  lang: zh-TW\n  max_retries: 0\n")
	t.Setenv(EnvLogLevel, "debug")

	// When: loading
	cfg, err := Load(explicit)

	// Then: env > explicit file > user file > defaults
	require.NoError(t, err)
	assert.Equal(t, "zh-TW", cfg.Docs.Lang)
	assert.Equal(t, "10s", cfg.Docs.Timeout)
	require.NotNil(t, cfg.Docs.MaxRetries)
	assert.Equal(t, 0, *cfg.Docs.MaxRetries)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, docs.DefaultEndpoint, cfg.Docs.Endpoint)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvEndpoint, "http://localhost:9000/docs")
	t.Setenv(EnvLang, "ko")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvMaxRetries, "1")
	t.Setenv(EnvTransport, "STDIO")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/docs", cfg.Docs.Endpoint)
	assert.Equal(t, "ko", cfg.Docs.Lang)
	assert.Equal(t, "5s", cfg.Docs.Timeout)
	assert.Equal(t, 1, *cfg.Docs.MaxRetries)
}

func TestLoad_MalformedEnvRetries(t *testing.T) {
	isolate(t)
	t.Setenv(EnvMaxRetries, "three")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxRetries)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "docs: [unclosed\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_Rejects(t *testing.T) {
	negative := -1
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"relative endpoint", func(c *Config) { c.Docs.Endpoint = "/docs" }, "docs.endpoint"},
		{"empty lang", func(c *Config) { c.Docs.Lang = "" }, "docs.lang"},
		{"bad timeout", func(c *Config) { c.Docs.Timeout = "soon" }, "docs.timeout"},
		{"zero timeout", func(c *Config) { c.Docs.Timeout = "0s" }, "docs.timeout"},
		{"negative retries", func(c *Config) { c.Docs.MaxRetries = &negative }, "docs.max_retries"},
		{"unknown transport", func(c *Config) { c.Server.Transport = "sse" }, "server.transport"},
		{"unknown log level", func(c *Config) { c.Server.LogLevel = "trace" }, "server.log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDocsClientConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Docs.Lang = "zh-TW"
	cfg.Docs.Timeout = "5s"

	dc := cfg.DocsClientConfig()

	assert.Equal(t, docs.DefaultEndpoint, dc.Endpoint)
	assert.Equal(t, "zh-TW", dc.Lang)
	assert.Equal(t, 5*time.Second, dc.Timeout)
	assert.Equal(t, 3, dc.MaxRetries)
}

func TestDocsClientConfig_ZeroRetriesDisables(t *testing.T) {
	cfg := NewConfig()
	zero := 0
	cfg.Docs.MaxRetries = &zero

	dc := cfg.DocsClientConfig()

	assert.Negative(t, dc.MaxRetries)
}

func TestWriteYAML_RoundTripsThroughLoad(t *testing.T) {
	// Given: a customized config written to disk
	isolate(t)
	cfg := NewConfig()
	cfg.Docs.Lang = "ja"
	path := filepath.Join(t.TempDir(), "out.yaml")

	// When: writing and loading it back
	require.NoError(t, cfg.WriteYAML(path))
	loaded, err := Load(path)

	// Then: the values survive
	require.NoError(t, err)
	assert.Equal(t, "ja", loaded.Docs.Lang)
	assert.Equal(t, cfg.Docs.Timeout, loaded.Docs.Timeout)
}

func TestGetUserConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", "paynow-docs-mcp", "config.yaml"), GetUserConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg", "paynow-docs-mcp"), GetUserConfigDir())
}

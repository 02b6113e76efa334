package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFPORTAL_API_URL", "API_PROXY_TARGET", "CONFPORTAL_STATE_PATH", "CONFPORTAL_DOWNLOAD_DIR",
	"CONFPORTAL_DUE_SOON_WINDOW", "CONFPORTAL_LOG_LEVEL", "CONFPORTAL_PAGE_SIZE",
}

// cleanEnv unsets every variable the loader reads and points dotenvFile at
// a file that does not exist. Both are restored on cleanup.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	orig := dotenvFile
	dotenvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { dotenvFile = orig })
}

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8080", c.APIBaseURL)
	assert.Equal(t, "downloads", c.DownloadDir)
	assert.Equal(t, 72*time.Hour, c.DueSoonWindow)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 20, c.PageSize)
	assert.NotEmpty(t, c.StatePath)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	want := defaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	cleanEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://from-json:1",
		"download_dir":    "json-downloads",
		"due_soon_window": "24h",
		"page_size":       5,
	})
	t.Setenv("CONFPORTAL_API_URL", "http://from-env:2")
	t.Setenv("CONFPORTAL_LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-c", path, "-a", "http://from-flag:3", "-unknown", "x"})
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://from-flag:3"
	want.DownloadDir = "json-downloads"
	want.DueSoonWindow = 24 * time.Hour
	want.PageSize = 5
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_InvalidResultIsRejected(t *testing.T) {
	cleanEnv(t)

	_, err := Load([]string{"-a", "localhost:8080"})
	require.Error(t, err)

	_, err = Load([]string{"-l", "loud"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.APIBaseURL = "https://portal.example.org/base" }, false},
		{"no scheme", func(c *Config) { c.APIBaseURL = "portal.example.org" }, true},
		{"ftp", func(c *Config) { c.APIBaseURL = "ftp://portal.example.org" }, true},
		{"empty state path", func(c *Config) { c.StatePath = "" }, true},
		{"negative window", func(c *Config) { c.DueSoonWindow = -time.Hour }, true},
		{"zero page", func(c *Config) { c.PageSize = 0 }, true},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "https://portal.example.org",
		"due_soon_window": "48h",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-config", path}))

		assert.Equal(t, "https://portal.example.org", cfg.APIBaseURL)
		assert.Equal(t, 48*time.Hour, cfg.DueSoonWindow)
		assert.Equal(t, "downloads", cfg.DownloadDir, "absent keys keep their value")
	})

	t.Run("nanoseconds", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"due_soon_window": int64(time.Hour)})
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-c", p}))
		assert.Equal(t, time.Hour, cfg.DueSoonWindow)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-a", "http://x"}))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", filepath.Join(dir, "nope.json")}))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", bad}))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TABLERO_API_URL", "")
	t.Setenv("TABLERO_PROJECT_ID", "")
	t.Setenv("TABLERO_DB_PATH", "")
	t.Setenv("TABLERO_THEME_FILE", "")
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "tablero")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.Grab != "space" {
		t.Errorf("Default Grab key = %s, want space", defaults.Grab)
	}
	if defaults.AddTask != "n" {
		t.Errorf("Default AddTask key = %s, want n", defaults.AddTask)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultRefreshDebounce, cfg.RefreshDebounce)
	assert.Equal(t, DefaultRetryAttempts, cfg.Retry.MaxAttempts)
	assert.False(t, cfg.Local)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `api_url: "https://board.example.com"
project_id: "p-1"
request_timeout: 3s
refresh_debounce: 50ms
retry:
  max_attempts: 5
key_mappings:
  quit: "x"
  grab: "g"
theme:
  preset: monochrome
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://board.example.com", cfg.APIURL)
	assert.Equal(t, "p-1", cfg.ProjectID)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.RefreshDebounce)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, DefaultRetryBaseDelay, cfg.Retry.BaseDelay)

	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "g", cfg.KeyMappings.Grab)
	// Unspecified values should use defaults
	assert.Equal(t, "e", cfg.KeyMappings.EditTask)
	assert.Equal(t, "#FFFFFF", cfg.ColorScheme.Accent)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "api_url: \"http://file:1\"\nproject_id: from-file\n")
	t.Setenv("TABLERO_API_URL", "http://env:2")
	t.Setenv("TABLERO_PROJECT_ID", "from-env")
	t.Setenv("TABLERO_DB_PATH", "/tmp/board.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env:2", cfg.APIURL)
	assert.Equal(t, "from-env", cfg.ProjectID)
	assert.Equal(t, "/tmp/board.db", cfg.DatabasePath)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad scheme", "api_url: \"ftp://example.com\"\n"},
		{"negative timeout", "request_timeout: -1s\n"},
		{"bad retry", "retry:\n  max_attempts: -2\n"},
		{"malformed yaml", "api_url: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.content)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLocalModeSkipsURLValidation(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "local: true\napi_url: \"not a url\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Local)
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.ProjectID = "p-9"
	cfg.RequestTimeout = 4 * time.Second
	cfg.KeyMappings.Quit = "x"

	require.NoError(t, cfg.Save())

	configPath := filepath.Join(dir, "tablero", "config.yaml")
	_, err := os.Stat(configPath)
	require.NoError(t, err, "config file not created at %s", configPath)

	cfg2, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "p-9", cfg2.ProjectID)
	assert.Equal(t, 4*time.Second, cfg2.RequestTimeout)
	assert.Equal(t, "x", cfg2.KeyMappings.Quit)
}

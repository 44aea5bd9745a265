package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tablero/internal/config/colors"
)

func TestThemeFileLoading(t *testing.T) {
	isolate(t)

	themeContent := []byte(`theme:
  accent: "#FF0000"
  create: "#00FF00"
  done: "#0000FF"
`)
	themePath := filepath.Join(t.TempDir(), "tablero-theme.yaml")
	if err := os.WriteFile(themePath, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv("TABLERO_THEME_FILE", themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Create != "#00FF00" {
		t.Errorf("Expected create to be #00FF00, got %s", cfg.ColorScheme.Create)
	}
	if cfg.ColorScheme.Done != "#0000FF" {
		t.Errorf("Expected done to be #0000FF, got %s", cfg.ColorScheme.Done)
	}

	// Other colors keep their defaults
	if cfg.ColorScheme.Delete != colors.Default().Delete {
		t.Errorf("Expected delete to keep default, got %s", cfg.ColorScheme.Delete)
	}
}

func TestMissingThemeFileIsIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("TABLERO_THEME_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ColorScheme.Accent != colors.Default().Accent {
		t.Errorf("Expected default accent, got %s", cfg.ColorScheme.Accent)
	}
}

func TestPresetFallback(t *testing.T) {
	tests := []struct {
		preset string
		want   string
	}{
		{"", "default"},
		{"default", "default"},
		{"monochrome", "monochrome"},
		{"unknown", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			if got := colors.GetPreset(tt.preset).Preset; got != tt.want {
				t.Errorf("GetPreset(%q) = %s, want %s", tt.preset, got, tt.want)
			}
		})
	}
}

func TestApplyDefaultsNamesPreset(t *testing.T) {
	tests := []struct {
		preset string
		want   string
		accent string
	}{
		{"", "default", colors.Default().Accent},
		{"monochrome", "monochrome", colors.Monochrome().Accent},
	}
	for _, tt := range tests {
		t.Run("preset="+tt.preset, func(t *testing.T) {
			scheme := colors.ColorScheme{Preset: tt.preset}
			scheme.ApplyDefaults()
			if scheme.Preset != tt.want {
				t.Errorf("Preset = %q, want %q", scheme.Preset, tt.want)
			}
			if scheme.Accent != tt.accent {
				t.Errorf("Accent = %s, want %s", scheme.Accent, tt.accent)
			}
		})
	}
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/tablero/internal/config/colors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL          = "http://localhost:3000"
	DefaultServerAddr      = ":3000"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRefreshDebounce = 150 * time.Millisecond
	DefaultRetryAttempts   = 3
	DefaultRetryBaseDelay  = 200 * time.Millisecond
	DefaultLogLevel        = "info"
)

// Config represents the application configuration
type Config struct {
	// Authority connection
	APIURL       string `yaml:"api_url"`
	ProjectID    string `yaml:"project_id"`
	Local        bool   `yaml:"local"`
	DatabasePath string `yaml:"database_path"`
	ServerAddr   string `yaml:"server_addr"`

	// Timing
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	RefreshDebounce time.Duration `yaml:"refresh_debounce"`
	Retry           RetryConfig   `yaml:"retry"`

	LogLevel string `yaml:"log_level"`

	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// RetryConfig controls retries of idempotent requests against the authority.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile loads and merges theme from TABLERO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TABLERO_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv lets TABLERO_* variables override values from the file.
func applyEnv(config *Config) {
	if v := os.Getenv("TABLERO_API_URL"); v != "" {
		config.APIURL = v
	}
	if v := os.Getenv("TABLERO_PROJECT_ID"); v != "" {
		config.ProjectID = v
	}
	if v := os.Getenv("TABLERO_DB_PATH"); v != "" {
		config.DatabasePath = v
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return finish(&Config{})
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return finish(&Config{})
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return finish(&config)
}

func finish(config *Config) (*Config, error) {
	applyEnv(config)
	loadThemeFile(config)
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports settings that cannot work at all.
func (c *Config) Validate() error {
	if !c.Local {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url %q must be an http(s) URL", c.APIURL)
		}
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.RefreshDebounce == 0 {
		c.RefreshDebounce = DefaultRefreshDebounce
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = DefaultRetryAttempts
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = DefaultRetryBaseDelay
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults for the polling dashboard.
const (
	DefaultBackendURL      = "http://localhost:8699"
	DefaultPollInterval    = 5 * time.Second
	DefaultFreshnessWindow = 5 * time.Second
)

// Config represents the user's configuration
type Config struct {
	BackendURL         string `json:"backend_url"`
	PollIntervalSecs   int    `json:"poll_interval_seconds,omitempty"`
	FreshnessWindowSec int    `json:"freshness_window_seconds,omitempty"`
}

// PollInterval returns the poll cadence, falling back to the default.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSecs <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// FreshnessWindow returns the fetch cache window, falling back to the default.
func (c *Config) FreshnessWindow() time.Duration {
	if c.FreshnessWindowSec <= 0 {
		return DefaultFreshnessWindow
	}
	return time.Duration(c.FreshnessWindowSec) * time.Second
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BackendURL: DefaultBackendURL,
	}
}

// globalConfigDir returns the global config directory path (~/.scriptorium)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scriptorium"), nil
}

// globalConfigPath returns the global config file path (~/.scriptorium/config.json)
func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// projectConfigPath returns the project-level config path (.scriptorium/config.json in cwd)
func projectConfigPath() string {
	return filepath.Join(".scriptorium", "config.json")
}

// Load reads the config from disk, checking project config first, then
// global, then applies environment overrides. A missing file is not an
// error; the defaults are returned instead.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile() (*Config, error) {
	// Try project config first (.scriptorium/config.json in current directory)
	if data, err := os.ReadFile(projectConfigPath()); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// Fall back to global config (~/.scriptorium/config.json)
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overlays SCRIPTORIUM_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SCRIPTORIUM_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("SCRIPTORIUM_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollIntervalSecs = n
		}
	}
	if v := os.Getenv("SCRIPTORIUM_FRESHNESS_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FreshnessWindowSec = n
		}
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
}

// Exists reports whether a config file is present at either location.
func Exists() bool {
	if _, err := os.Stat(projectConfigPath()); err == nil {
		return true
	}
	path, err := globalConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to the project-level location (.scriptorium/config.json)
func Save(cfg *Config) error {
	dir := ".scriptorium"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(projectConfigPath(), data, 0644)
}

// SaveToGlobal writes the config to the global location (~/.scriptorium/config.json)
func SaveToGlobal(cfg *Config) error {
	dir, err := globalConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := globalConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

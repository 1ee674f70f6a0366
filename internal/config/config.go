// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"tax-dashboard/adapters/schedules"
	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
	"tax-dashboard/internal/logging"
)

// Environment variables that override file settings
const (
	EnvSchedulesFile   = "TAXDASH_SCHEDULES_FILE"
	EnvDefaultSchedule = "TAXDASH_DEFAULT_SCHEDULE"
	EnvServerAddr      = "TAXDASH_ADDR"
	EnvLogLevel        = "TAXDASH_LOG_LEVEL"
	EnvOutputFormat    = "TAXDASH_FORMAT"
	EnvNoColor         = "TAXDASH_NO_COLOR"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Schedules contains tax schedule settings
	Schedules SchedulesConfig `json:"schedules"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Indicator contains moving-average defaults
	Indicator IndicatorConfig `json:"indicator"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// SchedulesConfig selects where bracket tables come from
type SchedulesConfig struct {
	// File is an HCL or JSON schedule file; empty means built-ins only
	File string `json:"file,omitempty"`

	// Default is the schedule used when a request names none
	Default string `json:"default"`

	// IncludeBuiltin keeps the built-in schedules alongside file schedules
	IncludeBuiltin bool `json:"include_builtin"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// IndicatorConfig contains moving-average windows
type IndicatorConfig struct {
	ShortWindow int `json:"short_window"`
	LongWindow  int `json:"long_window"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// DefaultPath returns $HOME/.tax-dashboard.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tax-dashboard.json")
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Schedules: SchedulesConfig{
			Default:        tax.ScheduleCurrent,
			IncludeBuiltin: true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Indicator: IndicatorConfig{
			ShortWindow: 40,
			LongWindow:  100,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config file "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads envFiles (".env" when none given; missing files are
// ignored) and overrides settings from TAXDASH_* variables.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return errors.Config("failed to load "+f, err)
		}
	}

	if v := os.Getenv(EnvSchedulesFile); v != "" {
		c.Schedules.File = v
	}
	if v := os.Getenv(EnvDefaultSchedule); v != "" {
		c.Schedules.Default = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvNoColor); v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Config(EnvNoColor+" must be a boolean", err)
		}
		c.Output.NoColor = noColor
	}
	return nil
}

// Registry builds the schedule registry described by the configuration.
// File schedules come first; built-ins fill in names the file does not use.
func (c *Config) Registry() (*tax.Registry, error) {
	registry := tax.NewRegistry()

	if c.Schedules.File != "" {
		loaded, err := schedules.Load(c.Schedules.File)
		if err != nil {
			return nil, err
		}
		for _, s := range loaded {
			if err := registry.Register(s); err != nil {
				return nil, err
			}
		}
	}

	if c.Schedules.IncludeBuiltin || c.Schedules.File == "" {
		taken := make(map[string]bool)
		for _, name := range registry.Names() {
			taken[name] = true
		}
		for _, s := range tax.BuiltinSchedules() {
			if taken[s.Name] {
				continue
			}
			if err := registry.Register(s); err != nil {
				return nil, err
			}
		}
	}

	if c.Schedules.Default != "" {
		if err := registry.SetDefault(c.Schedules.Default); err != nil {
			return nil, errors.Config("default schedule is not defined", err)
		}
	}
	return registry, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PRICEDISPLAY_DATA_SOURCE.
const EnvPrefix = "PRICEDISPLAY"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// SetEnvFile sets a dotenv file whose PRICEDISPLAY_* entries act as
// environment overrides. Variables already set in the environment win.
func (l *Loader) SetEnvFile(path string) {
	l.envFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < env file < env vars < CLI flags
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Data.Source = strings.TrimSpace(cfg.Data.Source)
	if !strings.HasPrefix(strings.ToLower(cfg.Data.Source), "http") {
		cfg.Data.Source = expandTilde(cfg.Data.Source)
	}
	cfg.Logging.File = expandTilde(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Options returns the resolved settings as a flat dotted mapping. Call it
// after Load.
func (l *Loader) Options() Options {
	return Flatten(l.v.AllSettings())
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "pricedisplay"))
	}

	homeDir, _ := os.UserHomeDir()
	if homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "pricedisplay"))
	}

	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)

	// Explicitly bind environment variables (Viper's Unmarshal has issues without this)
	bindEnvVars(v)

	v.AutomaticEnv()
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	// Data
	v.SetDefault("data.source", cfg.Data.Source)
	v.SetDefault("data.date_field", cfg.Data.DateField)
	v.SetDefault("data.price_field", cfg.Data.PriceField)
	v.SetDefault("data.price_no_tax_field", cfg.Data.PriceNoTaxField)
	v.SetDefault("data.update_frequency", cfg.Data.UpdateFrequency)
	v.SetDefault("data.normal_timezone", cfg.Data.NormalTimezone)
	v.SetDefault("data.timeout", cfg.Data.Timeout)

	// Price bands
	v.SetDefault("price.low", cfg.Price.Low)
	v.SetDefault("price.high", cfg.Price.High)

	// Layout
	v.SetDefault("layout.preferred", cfg.Layout.Preferred)
	v.SetDefault("layout.reverse", cfg.Layout.Reverse)

	// Markers
	v.SetDefault("caret.style.above", cfg.Caret.Style.Above)
	v.SetDefault("caret.style.below", cfg.Caret.Style.Below)
	v.SetDefault("caret.past_hours", cfg.Caret.PastHours)
	v.SetDefault("extremes.visible", cfg.Extremes.Visible)
	v.SetDefault("extremes.style.low", cfg.Extremes.Style.Low)
	v.SetDefault("extremes.style.high", cfg.Extremes.Style.High)
	v.SetDefault("missing.symbol", cfg.Missing.Symbol)

	// Day window
	v.SetDefault("day.start", cfg.Day.Start)
	v.SetDefault("day.end", cfg.Day.End)

	// TUI
	v.SetDefault("tui.theme", cfg.TUI.Theme)

	// Logging
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)
}

// loadConfigFile attempts to load the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use defaults
			return nil
		}
		return err
	}

	return nil
}

// loadEnvFile exports the PRICEDISPLAY_* entries of the env file into the
// process environment without overriding variables that are already set.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	values, err := godotenv.Read(l.envFile)
	if err != nil {
		return err
	}
	for key, value := range values {
		if !strings.HasPrefix(key, EnvPrefix+"_") {
			continue
		}
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Set sets a Viper value by key. Set values take precedence over every
// other source.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// envKeys lists every configurable key that supports environment overrides.
var envKeys = []string{
	// Data
	"data.source",
	"data.date_field",
	"data.price_field",
	"data.price_no_tax_field",
	"data.update_frequency",
	"data.normal_timezone",
	"data.timeout",
	// Price bands
	"price.low",
	"price.high",
	// Layout
	"layout.preferred",
	"layout.reverse",
	// Markers
	"caret.style.above",
	"caret.style.below",
	"caret.past_hours",
	"extremes.visible",
	"extremes.style.low",
	"extremes.style.high",
	"missing.symbol",
	// Day window
	"day.start",
	"day.end",
	// TUI
	"tui.theme",
	// Logging
	"logging.level",
	"logging.format",
	"logging.file",
	"logging.enable_caller",
}

// EnvVar returns the environment variable name for a config key:
// data.source -> PRICEDISPLAY_DATA_SOURCE.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// bindEnvVars binds environment variables for config keys.
// Viper's Unmarshal has issues with env vars on nested structs unless explicitly bound.
func bindEnvVars(v *viper.Viper) {
	for _, key := range envKeys {
		_ = v.BindEnv(key, EnvVar(key))
	}
}

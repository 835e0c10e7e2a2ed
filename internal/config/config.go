// Package config handles pricedisplay configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// Layout names accepted by layout.preferred.
const (
	LayoutMinimal    = "minimal"
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
)

// Config is the root configuration structure for pricedisplay.
type Config struct {
	// Data source settings
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Price band thresholds
	Price PriceConfig `yaml:"price" mapstructure:"price"`

	// Layout selection
	Layout LayoutConfig `yaml:"layout" mapstructure:"layout"`

	// Current hour caret
	Caret CaretConfig `yaml:"caret" mapstructure:"caret"`

	// Daily low and high markers
	Extremes ExtremesConfig `yaml:"extremes" mapstructure:"extremes"`

	// Glyph for hours without data
	Missing MissingConfig `yaml:"missing" mapstructure:"missing"`

	// Day and night windows of the detail panels
	Day DayConfig `yaml:"day" mapstructure:"day"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// DataConfig describes where prices come from.
type DataConfig struct {
	// Source is an http(s) URL or a local JSON file.
	Source string `yaml:"source" mapstructure:"source"`

	// DateField is the key of the hour's ISO-8601 start time.
	DateField string `yaml:"date_field" mapstructure:"date_field"`

	// PriceField is the key of the tax-inclusive price.
	PriceField string `yaml:"price_field" mapstructure:"price_field"`

	// PriceNoTaxField is the key of the tax-exclusive price.
	PriceNoTaxField string `yaml:"price_no_tax_field" mapstructure:"price_no_tax_field"`

	// UpdateFrequency is how often, in minutes, tomorrow's prices are polled.
	UpdateFrequency int `yaml:"update_frequency" mapstructure:"update_frequency"`

	// NormalTimezone is the standard-time UTC offset in hours.
	NormalTimezone int `yaml:"normal_timezone" mapstructure:"normal_timezone"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PriceConfig holds the band thresholds in cents.
type PriceConfig struct {
	Low  float64 `yaml:"low" mapstructure:"low"`
	High float64 `yaml:"high" mapstructure:"high"`
}

// LayoutConfig selects the dashboard arrangement.
type LayoutConfig struct {
	// Preferred is one of minimal, horizontal, vertical.
	Preferred string `yaml:"preferred" mapstructure:"preferred"`

	// Reverse swaps the graph and the details block.
	Reverse bool `yaml:"reverse" mapstructure:"reverse"`
}

// CaretConfig controls the current hour marker.
type CaretConfig struct {
	Style CaretStyle `yaml:"style" mapstructure:"style"`

	// PastHours is how many hours of history are shown left of the caret.
	PastHours int `yaml:"past_hours" mapstructure:"past_hours"`
}

// CaretStyle holds the caret glyphs.
type CaretStyle struct {
	Above string `yaml:"above" mapstructure:"above"`
	Below string `yaml:"below" mapstructure:"below"`
}

// ExtremesConfig controls the daily low and high markers.
type ExtremesConfig struct {
	Visible bool          `yaml:"visible" mapstructure:"visible"`
	Style   ExtremesStyle `yaml:"style" mapstructure:"style"`
}

// ExtremesStyle holds the extreme marker glyphs.
type ExtremesStyle struct {
	Low  string `yaml:"low" mapstructure:"low"`
	High string `yaml:"high" mapstructure:"high"`
}

// MissingConfig holds the glyph drawn for hours without a price.
type MissingConfig struct {
	Symbol string `yaml:"symbol" mapstructure:"symbol"`
}

// DayConfig bounds the daytime window, in hours.
type DayConfig struct {
	Start int `yaml:"start" mapstructure:"start"`
	End   int `yaml:"end" mapstructure:"end"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The dashboard discards logs without it.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// DefaultConfig returns the default configuration. Data.Source has no default.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			DateField:       "DateTime",
			PriceField:      "PriceWithTax",
			PriceNoTaxField: "PriceNoTax",
			UpdateFrequency: 5,
			NormalTimezone:  2,
			Timeout:         30 * time.Second,
		},
		Price: PriceConfig{
			Low:  5,
			High: 15,
		},
		Layout: LayoutConfig{
			Preferred: LayoutHorizontal,
		},
		Caret: CaretConfig{
			Style:     CaretStyle{Above: "▼", Below: "▲"},
			PastHours: 8,
		},
		Extremes: ExtremesConfig{
			Style: ExtremesStyle{Low: "∨", High: "∧"},
		},
		Missing: MissingConfig{
			Symbol: "-",
		},
		Day: DayConfig{
			Start: 6,
			End:   22,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.Source == "" {
		return &MissingOptionError{Option: "data.source"}
	}
	if c.Data.DateField == "" {
		return &MissingOptionError{Option: "data.date_field"}
	}
	if c.Data.PriceField == "" {
		return &MissingOptionError{Option: "data.price_field"}
	}

	if c.Data.UpdateFrequency < 1 {
		return fmt.Errorf("data.update_frequency must be at least 1 minute")
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("data.timeout must be positive")
	}

	if c.Price.Low > c.Price.High {
		return fmt.Errorf("price.low (%v) must not exceed price.high (%v)", c.Price.Low, c.Price.High)
	}

	switch c.Layout.Preferred {
	case LayoutMinimal, LayoutHorizontal, LayoutVertical:
		// ok
	default:
		return fmt.Errorf("layout.preferred must be one of minimal, horizontal, vertical")
	}

	if c.Caret.PastHours < 0 {
		return fmt.Errorf("caret.past_hours must not be negative")
	}

	if c.Day.Start < 0 || c.Day.End > 24 || c.Day.Start >= c.Day.End {
		return fmt.Errorf("day.start and day.end must satisfy 0 <= start < end <= 24")
	}

	glyphs := map[string]string{
		"caret.style.above":   c.Caret.Style.Above,
		"caret.style.below":   c.Caret.Style.Below,
		"extremes.style.low":  c.Extremes.Style.Low,
		"extremes.style.high": c.Extremes.Style.High,
		"missing.symbol":      c.Missing.Symbol,
	}
	for key, glyph := range glyphs {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", key, glyph)
		}
	}

	return nil
}

// DefaultConfigPath returns where `config init` writes by default.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "pricedisplay", "config.yaml")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "pricedisplay", "config.yaml")
}

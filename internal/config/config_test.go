package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRequiresSource(t *testing.T) {
	isolate(t)
	unsetEnv(t, EnvVar("data.source"))

	_, err := NewLoader().Load()
	require.Error(t, err)

	var missing *MissingOptionError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "data.source", missing.Option)
	require.Contains(t, err.Error(), "missing option: data.source")
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
data:
  source: ~/prices.json
price:
  low: 3
  high: 12
layout:
  preferred: horizontal
`)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"PRICEDISPLAY_PRICE_HIGH=20\nPRICEDISPLAY_LAYOUT_PREFERRED=minimal\nUNRELATED_KEY=1\n"), 0o644))

	unsetEnv(t, EnvVar("price.high"))
	unsetEnv(t, "UNRELATED_KEY")
	t.Setenv(EnvVar("layout.preferred"), "vertical")

	loader := NewLoader()
	loader.SetConfigFile(path)
	loader.SetEnvFile(envFile)
	loader.Set("tui.theme", "high-contrast")

	cfg, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "prices.json"), cfg.Data.Source)
	require.Equal(t, 3.0, cfg.Price.Low)
	require.Equal(t, 20.0, cfg.Price.High)
	require.Equal(t, LayoutVertical, cfg.Layout.Preferred)
	require.Equal(t, "high-contrast", cfg.TUI.Theme)
	require.Equal(t, 8, cfg.Caret.PastHours)
	require.Equal(t, path, loader.ConfigFileUsed())

	_, set := os.LookupEnv("UNRELATED_KEY")
	require.False(t, set)

	opts := loader.Options()
	high, err := opts.Decimal("price.high")
	require.NoError(t, err)
	require.Equal(t, "20", high.String())
	above, err := opts.Rune("caret.style.above")
	require.NoError(t, err)
	require.Equal(t, '▼', above)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	loader := NewLoader()
	loader.SetConfigFile(filepath.Join(dir, "nope.yaml"))
	_, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults with source",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown layout",
			mutate:  func(c *Config) { c.Layout.Preferred = "diagonal" },
			wantErr: "layout.preferred",
		},
		{
			name:    "inverted bands",
			mutate:  func(c *Config) { c.Price.Low, c.Price.High = 20, 10 },
			wantErr: "price.low",
		},
		{
			name:    "zero update frequency",
			mutate:  func(c *Config) { c.Data.UpdateFrequency = 0 },
			wantErr: "data.update_frequency",
		},
		{
			name:    "negative past hours",
			mutate:  func(c *Config) { c.Caret.PastHours = -1 },
			wantErr: "caret.past_hours",
		},
		{
			name:    "empty day window",
			mutate:  func(c *Config) { c.Day.Start, c.Day.End = 22, 6 },
			wantErr: "day.start",
		},
		{
			name:    "multi character caret",
			mutate:  func(c *Config) { c.Caret.Style.Above = "vv" },
			wantErr: "caret.style.above",
		},
		{
			name:    "missing price field",
			mutate:  func(c *Config) { c.Data.PriceField = "" },
			wantErr: "missing option: data.price_field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Data.Source = "prices.json"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteTemplate(path, false))

	err := WriteTemplate(path, false)
	require.ErrorIs(t, err, ErrConfigExists)
	require.NoError(t, WriteTemplate(path, true))

	loader := NewLoader()
	loader.SetConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, ExampleSource, cfg.Data.Source)
	require.Equal(t, 30*time.Second, cfg.Data.Timeout)
	require.Equal(t, "▼", cfg.Caret.Style.Above)
	require.Equal(t, 22, cfg.Day.End)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	require.Equal(t, "/xdg/pricedisplay/config.yaml", DefaultConfigPath())
}

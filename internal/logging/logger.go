// Package logging writes the dashboard's structured logs with zerolog.
//
// The display owns the terminal while it runs, so logs go to a file or are
// dropped. Each part of the program logs through its own component logger:
// the dashboard loop, the refresh scheduler, the price source and the layout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Component names.
const (
	ComponentDashboard = "dashboard"
	ComponentScheduler = "scheduler"
	ComponentPrices    = "prices"
	ComponentDisplay   = "display"
)

// Logger is the global logger instance. It discards everything until Init
// is called.
var Logger = zerolog.Nop()

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is json or console.
	Format string

	// File receives the log lines, appended. Empty drops them unless Output
	// is set.
	File string

	// Output overrides File. Tests point it at a buffer.
	Output io.Writer

	// EnableCaller adds caller information to logs.
	EnableCaller bool
}

// Init points the global logger at cfg's destination. The returned function
// closes the log file, if one was opened.
func Init(cfg Config) (func(), error) {
	out := cfg.Output
	closeFn := func() {}
	if out == nil {
		out = io.Discard
		if cfg.File != "" {
			f, err := openFile(cfg.File)
			if err != nil {
				return nil, err
			}
			out = f
			closeFn = func() { _ = f.Close() }
		}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}
	Logger = ctx.Logger()
	return closeFn, nil
}

func openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// parseLevel accepts zerolog's level names plus warning and off. Anything
// else is info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// Component returns a logger tagged with one of the component names.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

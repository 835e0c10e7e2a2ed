package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/logging"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// RunOptions are the command line inputs of Run.
type RunOptions struct {
	ConfigFile string
	EnvFile    string

	// Overrides are flat config keys set from flags. They take precedence
	// over every other source.
	Overrides map[string]any
}

// terminalSize reports the rows and columns of the controlling terminal.
var terminalSize = func() (int, int, error) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("read terminal size: %w", err)
	}
	return height, width, nil
}

// Run loads the configuration, fetches the prices and runs the dashboard
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	loader, cfg, err := loadConfig(opts)
	if err != nil {
		return withCode(ExitConfig, err)
	}

	theme, err := screen.LookupTheme(cfg.TUI.Theme)
	if err != nil {
		return withCode(ExitConfig, err)
	}

	closeLog, err := initLogging(cfg.Logging)
	if err != nil {
		return withCode(ExitConfig, err)
	}
	defer closeLog()

	logger := logging.Component(logging.ComponentDashboard)

	options := loader.Options()
	sourceCfg, err := sourceConfig(options)
	if err != nil {
		return withCode(ExitConfig, err)
	}
	source, err := prices.NewSource(sourceCfg, time.Now)
	if err != nil {
		return withCode(ExitConfig, err)
	}

	daily, err := source.Fetch(ctx)
	if err != nil {
		return withCode(ExitData, err)
	}

	height, width, err := terminalSize()
	if err != nil {
		return withCode(ExitDisplay, err)
	}

	model, err := NewModel(ctx, ModelConfig{
		Options: options,
		Fetcher: source,
		Theme:   theme,
		Daily:   daily,
		Height:  height,
		Width:   width,
	})
	if err != nil {
		code := ExitCode(err)
		if code == ExitUnexpected {
			code = ExitDisplay
		}
		return withCode(code, err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	scheduler := NewScheduler(program, time.Local)
	if err := scheduler.Register(cfg.Data.UpdateFrequency); err != nil {
		return withCode(ExitConfig, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info().
		Str("source", logging.RedactURL(cfg.Data.Source)).
		Str("layout", string(model.Layout())).
		Int("height", height).
		Int("width", width).
		Msg("dashboard started")

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info().Msg("interrupted")
			return nil
		}
		return err
	}
	return nil
}

// sourceConfig reads the data.* options.
func sourceConfig(opts config.Options) (prices.SourceConfig, error) {
	var (
		cfg prices.SourceConfig
		err error
	)
	if cfg.Location, err = opts.String("data.source"); err != nil {
		return cfg, err
	}
	if cfg.DateField, err = opts.String("data.date_field"); err != nil {
		return cfg, err
	}
	if cfg.PriceField, err = opts.String("data.price_field"); err != nil {
		return cfg, err
	}
	if value, ok := opts.Lookup("data.price_no_tax_field"); ok {
		cfg.PriceNoTaxField = fmt.Sprint(value)
	}
	if cfg.Timeout, err = opts.Duration("data.timeout"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfig(opts RunOptions) (*config.Loader, *config.Config, error) {
	loader := config.NewLoader()
	if opts.ConfigFile != "" {
		loader.SetConfigFile(opts.ConfigFile)
	}
	if opts.EnvFile != "" {
		loader.SetEnvFile(opts.EnvFile)
	}
	for key, value := range opts.Overrides {
		loader.Set(key, value)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}

// initLogging points the global logger at the log file. Without one, logs are
// dropped: the dashboard owns the terminal.
func initLogging(cfg config.LoggingConfig) (func(), error) {
	return logging.Init(logging.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		File:         cfg.File,
		EnableCaller: cfg.EnableCaller,
	})
}

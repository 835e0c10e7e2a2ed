package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/logging"
)

func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(version).ExecuteContext(ctx)
}

// flagKeys maps dashboard flags to the config keys they override.
var flagKeys = map[string]string{
	"source":    "data.source",
	"layout":    "layout.preferred",
	"reverse":   "layout.reverse",
	"theme":     "tui.theme",
	"log-level": "logging.level",
	"log-file":  "logging.file",
}

func newRootCmd(version string) *cobra.Command {
	opts := RunOptions{}
	cmd := &cobra.Command{
		Use:           "pricedisplay",
		Short:         "electricity spot price dashboard",
		Long:          "Terminal dashboard of hourly electricity spot prices: a sparkline graph around the current hour with price details.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := flagOverrides(cmd)
			if err != nil {
				return err
			}
			opts.Overrides = overrides
			return Run(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/pricedisplay/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file with PRICEDISPLAY_* overrides")

	cmd.Flags().String("source", "", "price data URL or JSON file")
	cmd.Flags().String("layout", "", "preferred layout: minimal|horizontal|vertical")
	cmd.Flags().Bool("reverse", false, "swap the graph and the details")
	cmd.Flags().String("theme", "", "theme: default|high-contrast")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error")
	cmd.Flags().String("log-file", "", "write logs to this file")

	cmd.AddCommand(newConfigCmd(&opts))
	return cmd
}

// flagOverrides collects the flags given on the command line.
func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	out := make(map[string]any)
	flags := cmd.Flags()
	for name, key := range flagKeys {
		if !flags.Changed(name) {
			continue
		}
		if name == "reverse" {
			v, err := flags.GetBool(name)
			if err != nil {
				return nil, err
			}
			out[key] = v
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func newConfigCmd(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if opts.ConfigFile != "" {
				path = opts.ConfigFile
			}
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return withCode(ExitConfig, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _, err := loadConfig(*opts)
			if err != nil {
				return withCode(ExitConfig, err)
			}
			return printOptions(cmd.OutOrStdout(), loader.Options(), loader.ConfigFileUsed())
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func printOptions(w io.Writer, opts config.Options, file string) error {
	if file != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", file); err != nil {
			return err
		}
	}
	redacted := config.Options(logging.RedactMap(opts))
	for _, key := range redacted.Keys() {
		if _, err := fmt.Fprintf(w, "%s = %v\n", key, redacted[key]); err != nil {
			return err
		}
	}
	return nil
}

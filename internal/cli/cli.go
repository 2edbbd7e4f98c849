package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/stashgrid/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.AppConfig, bool, error) {
	slog.Debug("CLI parser started.")

	cfg := app.DefaultConfig()
	var configPath string
	var positional []string
	ran := false

	cmd := &cobra.Command{
		Use:   "stashgrid [options] [INPUT_PATH]",
		Short: "StashGrid - plan a cycle-free upload order for linked records.",
		Long: `StashGrid computes an order in which records can be created so that every
reference points to something that already exists. When references form
cycles, the cheapest links are stashed and must be applied after upload.

INPUT_PATH is a single .hcl file, a directory containing .hcl files, or an
.xml data file. --input takes precedence over INPUT_PATH; both override the
input set in a --config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, a []string) error {
			positional = a
			ran = true
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to a TOML config file. Flags override its values.")
	flags.StringVarP(&cfg.InputPath, "input", "i", "", "Path to the input file or directory.")
	flags.StringVar(&cfg.InputFormat, "input-format", cfg.InputFormat, "Input format. Options: 'auto', 'hcl' or 'xml'.")
	flags.StringVarP(&cfg.OutputPath, "output", "o", "", "Write the plan to this file instead of stdout.")
	flags.StringVarP(&cfg.OutputFormat, "format", "f", cfg.OutputFormat, "Plan format. Options: 'json', 'yaml', 'hcl' or 'msgpack'.")
	flags.StringVar(&cfg.Weighting, "weighting", cfg.Weighting, "Cost of a group link. Options: 'edge' or 'fractional'.")
	flags.BoolVar(&cfg.Verify, "verify", false, "Check the plan against the input before writing it.")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&cfg.ServePort, "serve-port", 0, "Port for the HTTP plan server. 0 is disabled.")
	flags.StringVar(&cfg.NotifyURL, "notify-url", "", "Socket.IO dashboard URL that receives planning progress.")
	flags.StringVar(&cfg.NotifyNamespace, "notify-namespace", cfg.NotifyNamespace, "Socket.IO namespace for progress events.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// Help was printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if configPath != "" {
		if err := applyConfigFile(flags, configPath, cfg); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	// --input wins over INPUT_PATH, and both win over the config file.
	if len(positional) > 0 && !flags.Changed("input") {
		cfg.InputPath = positional[0]
	}
	slog.Debug("Input path determined.", "path", cfg.InputPath)

	if cfg.InputPath == "" && cfg.ServePort == 0 {
		slog.Debug("No input path provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(*cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// applyConfigFile loads path into cfg and then re-applies every flag that was
// set explicitly.
func applyConfigFile(flags *pflag.FlagSet, path string, cfg *app.AppConfig) error {
	changed := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if err := app.LoadConfigFile(path, cfg); err != nil {
		return err
	}

	for name, value := range changed {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("failed to re-apply flag --%s: %w", name, err)
		}
	}
	return nil
}

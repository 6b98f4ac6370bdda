// Package main provides the exitcodes CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/config"
	"semantic-exit/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath string
	dbPath     string
	jsonOutput bool
	noColor    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	err := rootCmd.Execute()
	err = classify(err)
	if err != nil && err.Error() != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	_ = logger.Sync()
	exitcodes.ExitWithError(err)
}

var rootCmd = &cobra.Command{
	Use:   "exitcodes",
	Short: "Explain, document and record semantic exit codes",
	Long: `exitcodes works with the semantic exit code convention:

  0        success
  1        failure with no further context
  80-99    user errors
  100-119  software or system errors
  128+n    terminated by signal n

Statuses can be explained, checked against documentation, recorded to a
local history database and exported as Prometheus metrics.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "History database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcodes.Wrap(err, exitcodes.UsageError)
	})
	rootCmd.Version = Version
}

// setup loads configuration and the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return exitcodes.Wrap(err, exitcodes.RequirementNotMet)
	}

	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return exitcodes.Wrap(fmt.Errorf("load config: %w", err), exitcodes.RequirementNotMet)
	}
	if dbPath != "" {
		cfg.History.DatabasePath = dbPath
	}

	logger = logging.NewWithConfig(cfg)
	logger.Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("database", cfg.History.DatabasePath),
		zap.String("command", cmd.CommandPath()),
	)
	return nil
}

// classify maps cobra's own errors onto exit codes. Errors already carrying
// a code pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return err
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return exitcodes.Wrap(err, exitcodes.UnknownSubcommand)
	}
	return exitcodes.Wrap(err, exitcodes.InternalError)
}

// usageArgs tags positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return exitcodes.Wrap(err, exitcodes.UsageError)
		}
		return nil
	}
}

// exitCodeError is a non-user-facing error used to exit with a specific
// status without printing anything.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return ""
}

func (e *exitCodeError) ExitCode() int {
	return e.code
}

func commandExit(code int) error {
	if code == 0 {
		return nil
	}
	return &exitCodeError{code: code}
}

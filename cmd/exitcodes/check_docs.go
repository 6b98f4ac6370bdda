package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/doctable"
)

func init() {
	rootCmd.AddCommand(checkDocsCmd)
}

var checkDocsCmd = &cobra.Command{
	Use:   "check-docs [file]",
	Short: "Verify a markdown exit code table matches the defined codes",
	Long: `Parse the "| code | ` + "`Name`" + ` | description |" rows of a markdown document
and check them against the defined exit codes in both directions.

Defaults to readme_path from the configuration (README.md).

Example:
  exitcodes check-docs docs/exit-codes.md`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runCheckDocs,
}

type docsReport struct {
	File       string   `json:"file"`
	Rows       int      `json:"rows"`
	InSync     bool     `json:"in_sync"`
	Mismatches []string `json:"mismatches,omitempty"`
}

func runCheckDocs(cmd *cobra.Command, args []string) error {
	path := cfg.ReadmePath
	if len(args) == 1 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return exitcodes.Wrap(fmt.Errorf("open documentation: %w", err), exitcodes.RequirementNotMet)
	}
	defer f.Close()

	rows, err := doctable.Parse(f)
	if err != nil {
		return exitcodes.Wrap(fmt.Errorf("%s: %w", path, err), exitcodes.NotOK)
	}

	report := docsReport{File: path, Rows: len(rows)}
	for _, m := range doctable.Verify(rows) {
		report.Mismatches = append(report.Mismatches, m.String())
	}
	report.InSync = len(report.Mismatches) == 0
	logger.Debug("checked documentation", zap.String("file", path), zap.Int("rows", len(rows)), zap.Bool("in_sync", report.InSync))

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else if report.InSync {
		color.New(color.FgGreen).Fprintf(out, "%s: %d exit codes in sync\n", path, len(rows))
	} else {
		for _, m := range report.Mismatches {
			color.New(color.FgRed).Fprintf(out, "%s: %s\n", path, m)
		}
	}

	if !report.InSync {
		return exitcodes.Wrap(fmt.Errorf("%s: %d mismatches", path, len(report.Mismatches)), exitcodes.NotOK)
	}
	return nil
}

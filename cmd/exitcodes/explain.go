package main

import (
	"fmt"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/server"
)

func init() {
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain <status>...",
	Short: "Explain what exit statuses mean",
	Long: `Classify one or more exit statuses, defined or not.

Example:
  some-tool; exitcodes explain $?
  exitcodes explain 0 82 130 3`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	explanations := make([]server.Explanation, 0, len(args))
	for _, arg := range args {
		status, err := strconv.Atoi(arg)
		if err != nil {
			return exitcodes.Wrapf(exitcodes.UsageError, "status must be an integer, got %q", arg)
		}
		explanations = append(explanations, server.Explain(status))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, explanations)
	}

	for _, e := range explanations {
		category, _ := exitcodes.ParseCategory(e.Category)
		label := e.Name
		switch {
		case e.Defined:
		case e.Signal > 0:
			label = fmt.Sprintf("signal %d (%s)", e.Signal, syscall.Signal(e.Signal))
		default:
			label = "undefined"
		}
		fmt.Fprintf(out, "%4d  %s  %s\n", e.Status, paintCategory(category, 8), label)
		if e.Description != "" {
			fmt.Fprintf(out, "      %s\n", e.Description)
		}
	}
	return nil
}

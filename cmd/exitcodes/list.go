package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/doctable"
	"semantic-exit/internal/server"
)

var listFormat string

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "Output format: text, markdown, json, yaml")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the defined exit codes",
	Long: `List every defined exit code with its range and description.

Examples:
  exitcodes list
  exitcodes list --format markdown > table.md
  exitcodes list --format yaml`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	format := listFormat
	if jsonOutput {
		format = "json"
	}

	all := exitcodes.All()
	infos := make([]server.CodeInfo, 0, len(all))
	for _, c := range all {
		infos = append(infos, server.Describe(c))
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, infos)
	case "yaml":
		return writeYAML(out, infos)
	case "markdown", "md":
		if err := doctable.Render(out); err != nil {
			return exitcodes.Wrap(err, exitcodes.InternalError)
		}
		return nil
	case "text":
	default:
		return exitcodes.Wrapf(exitcodes.UsageError, "unknown format %q (want text, markdown, json or yaml)", format)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tCATEGORY\tDESCRIPTION")
	for _, c := range all {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.Int(), c, paintCategory(exitcodes.Classify(c.Int()), 8), c.Description())
	}
	return tw.Flush()
}

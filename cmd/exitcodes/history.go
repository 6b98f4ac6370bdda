package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/history"
)

var (
	historyLimit     int
	historyCategory  string
	historyCommand   string
	historyStats     bool
	historyDays      int
	historyPruneDays int
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum entries to show")
	historyCmd.Flags().StringVar(&historyCategory, "category", "", "Filter by category (success, failure, user, software, signal, reserved)")
	historyCmd.Flags().StringVar(&historyCommand, "command", "", "Filter by recorded command")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show totals instead of entries")
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "Window for --stats in days")
	historyCmd.Flags().IntVar(&historyPruneDays, "prune-days", 0, "Delete entries older than N days, then exit")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query recorded exit statuses",
	Long: `Show recorded exit statuses, newest first.

Examples:
  exitcodes history --limit 10
  exitcodes history --category user
  exitcodes history --command backup.sh
  exitcodes history --stats --days 7
  exitcodes history --prune-days 90`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit <= 0 {
		return exitcodes.Wrapf(exitcodes.UsageError, "--limit must be positive, got %d", historyLimit)
	}
	if historyCategory != "" {
		if _, ok := exitcodes.ParseCategory(historyCategory); !ok {
			return exitcodes.Wrapf(exitcodes.UsageError, "unknown category %q", historyCategory)
		}
	}

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory(db)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case historyPruneDays > 0:
		return pruneHistory(ctx, cmd, db)
	case historyStats:
		return showStats(ctx, cmd, db)
	}

	var entries []history.Entry
	switch {
	case historyCategory != "":
		entries, err = db.ByCategory(ctx, historyCategory, historyLimit)
	case historyCommand != "":
		entries, err = db.ByCommand(ctx, historyCommand, historyLimit)
	default:
		entries, err = db.Recent(ctx, historyLimit)
	}
	if err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recorded exit statuses")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSTATUS\tNAME\tCATEGORY\tCOMMAND\tNOTE")
	for _, e := range entries {
		category, _ := exitcodes.ParseCategory(e.Category)
		name := e.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Status, name,
			paintCategory(category, 8), e.Command, e.Note)
	}
	return tw.Flush()
}

func showStats(ctx context.Context, cmd *cobra.Command, db *history.DB) error {
	if historyDays <= 0 {
		return exitcodes.Wrapf(exitcodes.UsageError, "--days must be positive, got %d", historyDays)
	}
	stats, err := db.Stats(ctx, historyDays)
	if err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, stats)
	}

	fmt.Fprintf(out, "Exit statuses (last %d days)\n", historyDays)
	fmt.Fprintf(out, "Period: %s to %s\n\n", stats.Since.Format("2006-01-02"), stats.Until.Format("2006-01-02"))
	fmt.Fprintf(out, "Total: %d\n\n", stats.Total)
	if stats.Total == 0 {
		return nil
	}

	fmt.Fprintln(out, "By category:")
	for _, c := range exitcodes.Categories() {
		if n := stats.ByCategory[c.String()]; n > 0 {
			fmt.Fprintf(out, "  %s %d\n", paintCategory(c, 10), n)
		}
	}

	statuses := make([]int, 0, len(stats.ByStatus))
	for s := range stats.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Ints(statuses)

	fmt.Fprintln(out, "\nBy status:")
	for _, s := range statuses {
		fmt.Fprintf(out, "  %-5d %-18s %d\n", s, exitcodes.Code(s), stats.ByStatus[s])
	}
	return nil
}

func pruneHistory(ctx context.Context, cmd *cobra.Command, db *history.DB) error {
	cutoff := time.Now().AddDate(0, 0, -historyPruneDays)
	pruned, err := db.Prune(ctx, cutoff)
	if err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}
	if err := db.Vacuum(ctx); err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]any{"pruned": pruned, "cutoff": cutoff.UTC()})
	}
	fmt.Fprintf(out, "Pruned %d entries older than %s\n", pruned, cutoff.Format("2006-01-02"))
	return nil
}

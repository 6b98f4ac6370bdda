package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/history"
	"semantic-exit/internal/metrics"
)

var (
	recordCommand     string
	recordNote        string
	recordPassthrough bool
)

func init() {
	recordCmd.Flags().StringVarP(&recordCommand, "command", "c", "", "Command that produced the status")
	recordCmd.Flags().StringVarP(&recordNote, "note", "n", "", "Free-form note")
	recordCmd.Flags().BoolVar(&recordPassthrough, "passthrough", false, "Exit with the recorded status")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record <status>",
	Short: "Record an observed exit status",
	Long: `Store an exit status in the history database. When metrics.textfile_path
is configured the Prometheus textfile is rewritten with updated totals.

Example:
  backup.sh; exitcodes record $? --command backup.sh --passthrough`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runRecord,
}

// openHistory opens the configured database, tagging failures Unavailable.
func openHistory() (*history.DB, error) {
	db, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		return nil, exitcodes.Wrap(err, exitcodes.Unavailable)
	}
	return db, nil
}

func closeHistory(db *history.DB) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close history database", zap.Error(err))
	}
}

func runRecord(cmd *cobra.Command, args []string) error {
	status, err := strconv.Atoi(args[0])
	if err != nil {
		return exitcodes.Wrapf(exitcodes.UsageError, "status must be an integer, got %q", args[0])
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

	entry, err := db.Record(ctx, history.Entry{Status: status, Command: recordCommand, Note: recordNote})
	if err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}
	logger.Info("recorded exit status",
		zap.String("id", entry.ID),
		zap.Int("status", entry.Status),
		zap.String("category", entry.Category),
		zap.String("command", entry.Command),
	)

	if retention := cfg.Retention(); retention > 0 {
		pruned, err := db.Prune(ctx, time.Now().Add(-retention))
		if err != nil {
			return exitcodes.Wrap(err, exitcodes.Unavailable)
		}
		if pruned > 0 {
			logger.Info("pruned history", zap.Int64("entries", pruned))
		}
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		counts, err := db.Counts(ctx)
		if err != nil {
			return exitcodes.Wrap(err, exitcodes.Unavailable)
		}
		metrics.Seed(counts)
		metrics.SetLastExit(entry.Time)
		if err := metrics.WriteTextfile(path); err != nil {
			return exitcodes.Wrap(err, exitcodes.InternalError)
		}
		logger.Debug("wrote metrics textfile", zap.String("path", path))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, entry); err != nil {
			return err
		}
	} else {
		label := entry.Name
		if label == "" {
			label = "undefined"
		}
		fmt.Fprintf(out, "recorded %d (%s, %s) as %s\n", entry.Status, label, entry.Category, entry.ID)
	}

	if recordPassthrough {
		return commandExit(status)
	}
	return nil
}

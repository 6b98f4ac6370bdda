package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"semantic-exit/exitcodes"
	"semantic-exit/internal/history"
	"semantic-exit/internal/metrics"
	"semantic-exit/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exit code lookup API and metrics",
	Long: `Serve the registry over HTTP:

  GET /api/v1/codes            all defined codes
  GET /api/v1/codes/{status}   classification of any status
  GET /api/v1/health
  GET /metrics                 Prometheus metrics, seeded from history

On SIGINT or SIGTERM the server shuts down gracefully and exits with
128 + the signal number.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	seedMetrics()

	srv := server.New(server.Options{
		Addr:            addr,
		RateLimit:       rate.Limit(cfg.Server.RateLimit),
		RateBurst:       cfg.Server.RateBurst,
		ShutdownTimeout: cfg.ShutdownTimeout(),
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var received syscall.Signal
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
			if s, ok := sig.(syscall.Signal); ok {
				received = s
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := srv.Run(ctx); err != nil {
		return exitcodes.Wrap(err, exitcodes.Unavailable)
	}

	// Run only returns nil after ctx was cancelled by the goroutine above.
	if received != 0 {
		return commandExit(exitcodes.FromSignal(received))
	}
	return nil
}

// seedMetrics loads historical totals so /metrics survives restarts.
// History is optional for serving, so failures are only logged.
func seedMetrics() {
	db, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		logger.Warn("history unavailable, metrics start empty", zap.Error(err))
		return
	}
	defer closeHistory(db)

	counts, err := db.Counts(context.Background())
	if err != nil {
		logger.Warn("failed to load history counts", zap.Error(err))
		return
	}
	metrics.Seed(counts)
	logger.Info("seeded metrics from history", zap.Int("statuses", len(counts)))
}

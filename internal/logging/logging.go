package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"semantic-exit/internal/config"
)

// New creates a logger that writes to stderr only, at info level.
func New() *zap.Logger {
	return NewWithConfig(nil)
}

// NewWithConfig builds a logger from the logging section of cfg. Console
// output goes to stderr so command output on stdout stays machine readable.
// When a log file is configured, entries are also written there as JSON with
// size-based rotation. A file that cannot be prepared falls back to stderr.
func NewWithConfig(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	development := false
	if cfg != nil {
		if err := level.Set(cfg.Logging.Level); err != nil {
			level = zapcore.InfoLevel
		}
		development = cfg.Logging.Development
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(development), zapcore.Lock(os.Stderr), level),
	}

	if cfg != nil && cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to ensure log directory for %s: %v\n", cfg.Logging.File, err)
		} else {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				fileWriter(cfg.Logging),
				level,
			))
		}
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func consoleEncoder(development bool) zapcore.Encoder {
	if development {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func fileWriter(cfg config.LoggingCfg) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"semantic-exit/internal/config"
)

func TestNewWithConfigWritesFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "semexit.log")

	logger := NewWithConfig(cfg)
	logger.Debug("recorded exit", zap.Int("status", 82))
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"recorded exit"`)
	assert.Contains(t, string(data), `"status":82`)
}

func TestNewWithConfigRespectsLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "warn"
	cfg.Logging.File = filepath.Join(t.TempDir(), "semexit.log")

	logger := NewWithConfig(cfg)
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewWithoutConfig(t *testing.T) {
	logger := New()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type LoggingCfg struct {
	Level       string `yaml:"level" json:"level"`             // debug, info, warn, error
	File        string `yaml:"file" json:"file"`               // Empty disables file output
	Development bool   `yaml:"development" json:"development"` // Console encoder instead of JSON
	MaxSizeMB   int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days" json:"max_age_days"`
	Compress    bool   `yaml:"compress" json:"compress"`
}

type HistoryCfg struct {
	DatabasePath  string `yaml:"database_path" json:"database_path"`
	RetentionDays int    `yaml:"retention_days" json:"retention_days"` // Entries older than this are pruned on record
}

type MetricsCfg struct {
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"` // node_exporter textfile collector output, optional
}

type ServerCfg struct {
	Addr               string  `yaml:"addr" json:"addr"`
	RateLimit          float64 `yaml:"rate_limit" json:"rate_limit"` // Requests per second per client
	RateBurst          int     `yaml:"rate_burst" json:"rate_burst"`
	ShutdownTimeoutSec int     `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

type Config struct {
	Logging    LoggingCfg `yaml:"logging" json:"logging"`
	History    HistoryCfg `yaml:"history" json:"history"`
	Metrics    MetricsCfg `yaml:"metrics" json:"metrics"`
	Server     ServerCfg  `yaml:"server" json:"server"`
	ReadmePath string     `yaml:"readme_path" json:"readme_path"` // Default document for check-docs
}

// Environment overrides, applied after the file is decoded.
const (
	EnvDBPath          = "SEMEXIT_DB_PATH"
	EnvLogLevel        = "SEMEXIT_LOG_LEVEL"
	EnvLogFile         = "SEMEXIT_LOG_FILE"
	EnvMetricsTextfile = "SEMEXIT_METRICS_TEXTFILE"
	EnvAddr            = "SEMEXIT_ADDR"
	EnvRetentionDays   = "SEMEXIT_RETENTION_DAYS"
)

var (
	errInvalidLevel     = errors.New("logging.level must be one of debug, info, warn, error")
	errNegativeRetain   = errors.New("history.retention_days cannot be negative")
	errInvalidRateLimit = errors.New("server.rate_limit cannot be negative")
	errInvalidPath      = errors.New("path must not be empty")
)

// Default returns a validated configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	// Defaults never fail validation.
	_ = cfg.validateAndDefault()
	return cfg
}

// Load reads a YAML file, applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv is Default with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding anything already set. A missing file is
// not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.History.DatabasePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		c.Metrics.TextfilePath = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvRetentionDays); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetentionDays, err)
		}
		c.History.RetentionDays = days
	}
	return nil
}

func (c *Config) validateAndDefault() error {
	switch c.Logging.Level {
	case "":
		c.Logging.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", errInvalidLevel, c.Logging.Level)
	}

	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 100
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 30
	}

	if c.History.RetentionDays < 0 {
		return errNegativeRetain
	}
	if c.History.DatabasePath == "" {
		c.History.DatabasePath = defaultDatabasePath()
	}
	cp, err := cleanPath(c.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("history.database_path: %w", err)
	}
	c.History.DatabasePath = cp

	if c.Server.Addr == "" {
		c.Server.Addr = ":9464"
	}
	if c.Server.RateLimit < 0 {
		return errInvalidRateLimit
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 50
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = 100
	}
	if c.Server.ShutdownTimeoutSec <= 0 {
		c.Server.ShutdownTimeoutSec = 10
	}

	if c.ReadmePath == "" {
		c.ReadmePath = "README.md"
	}
	return nil
}

func defaultDatabasePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "semantic-exit", "history.db")
	}
	return filepath.Join(os.TempDir(), "semantic-exit", "history.db")
}

func cleanPath(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	return filepath.Clean(p), nil
}

// Retention is the history retention window, zero when pruning is disabled.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.History.RetentionDays) * 24 * time.Hour
}

// ShutdownTimeout bounds graceful server shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSec) * time.Second
}

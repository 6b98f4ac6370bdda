package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"semantic-exit/exitcodes"
)

// ErrInvalidLimit is returned for non-positive query limits.
var ErrInvalidLimit = errors.New("limit must be positive")

// DB stores observed process exit statuses in SQLite.
type DB struct {
	db *sql.DB
}

// Entry is one observed exit status.
type Entry struct {
	ID       string    `json:"id" yaml:"id"`
	Time     time.Time `json:"time" yaml:"time"`
	Status   int       `json:"status" yaml:"status"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"` // Set when Status is a defined code
	Category string    `json:"category" yaml:"category"`
	Command  string    `json:"command,omitempty" yaml:"command,omitempty"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// Open creates or opens the history database at path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	// _loc=auto parses DATETIME columns back into time.Time
	db, err := sql.Open("sqlite3", "file:"+path+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Exec instead of Ping so the file gets created now
	if _, err := db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database (check permissions on %s): %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	h := &DB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return h, nil
}

func (h *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exits (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		status INTEGER NOT NULL,
		name TEXT,
		category TEXT NOT NULL,
		command TEXT,
		note TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_exits_timestamp ON exits(timestamp);
	CREATE INDEX IF NOT EXISTS idx_exits_status ON exits(status);
	CREATE INDEX IF NOT EXISTS idx_exits_category ON exits(category);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Record stores e. ID and Time are filled in when empty; Name and Category
// are always derived from Status.
func (h *DB) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.Time = e.Time.UTC()
	e.Category = exitcodes.Classify(e.Status).String()
	e.Name = ""
	if code, err := exitcodes.Parse(e.Status); err == nil {
		e.Name = code.String()
	}

	_, err := h.db.ExecContext(ctx, `
	INSERT INTO exits (id, timestamp, status, name, category, command, note)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time, e.Status, e.Name, e.Category, e.Command, e.Note,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record exit %d: %w", e.Status, err)
	}
	return e, nil
}

// Prune deletes entries recorded before cutoff and returns how many went.
func (h *DB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := h.db.ExecContext(ctx, "DELETE FROM exits WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	return res.RowsAffected()
}

// Vacuum compacts the database file.
func (h *DB) Vacuum(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, "VACUUM")
	return err
}

func (h *DB) Close() error {
	return h.db.Close()
}

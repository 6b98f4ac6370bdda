package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Stats summarises entries over a time window.
type Stats struct {
	Since      time.Time        `json:"since" yaml:"since"`
	Until      time.Time        `json:"until" yaml:"until"`
	Total      int64            `json:"total" yaml:"total"`
	ByCategory map[string]int64 `json:"by_category" yaml:"by_category"`
	ByStatus   map[int]int64    `json:"by_status" yaml:"by_status"`
}

const selectEntries = `
	SELECT id, timestamp, status, name, category, command, note
	FROM exits
`

// Recent returns the newest entries first.
func (h *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return h.query(ctx, selectEntries+"ORDER BY timestamp DESC LIMIT ?", limit)
}

// ByCategory returns the newest entries in category first.
func (h *DB) ByCategory(ctx context.Context, category string, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return h.query(ctx, selectEntries+"WHERE category = ? ORDER BY timestamp DESC LIMIT ?", category, limit)
}

// ByCommand returns the newest entries recorded for command first.
func (h *DB) ByCommand(ctx context.Context, command string, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return h.query(ctx, selectEntries+"WHERE command = ? ORDER BY timestamp DESC LIMIT ?", command, limit)
}

// Counts returns the number of entries per status over the whole history.
func (h *DB) Counts(ctx context.Context) (map[int]int64, error) {
	rows, err := h.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM exits GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var status int
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// Stats summarises the last days days of history.
func (h *DB) Stats(ctx context.Context, days int) (*Stats, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	until := time.Now().UTC()
	since := until.AddDate(0, 0, -days)

	stats := &Stats{
		Since:      since,
		Until:      until,
		ByCategory: make(map[string]int64),
		ByStatus:   make(map[int]int64),
	}

	rows, err := h.db.QueryContext(ctx, `
	SELECT status, category, COUNT(*)
	FROM exits
	WHERE timestamp >= ?
	GROUP BY status, category`, since)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var category string
		var n int64
		if err := rows.Scan(&status, &category, &n); err != nil {
			return nil, err
		}
		stats.Total += n
		stats.ByCategory[category] += n
		stats.ByStatus[status] += n
	}
	return stats, rows.Err()
}

func (h *DB) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var name, command, note sql.NullString
		if err := rows.Scan(&e.ID, &e.Time, &e.Status, &name, &e.Category, &command, &note); err != nil {
			return nil, fmt.Errorf("scan exit: %w", err)
		}
		e.Name = name.String
		e.Command = command.String
		e.Note = note.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

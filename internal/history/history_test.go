package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordDerivesNameAndCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		status   int
		name     string
		category string
	}{
		{0, "OK", "success"},
		{1, "NotOK", "failure"},
		{82, "RequirementNotMet", "user"},
		{101, "Unavailable", "software"},
		{130, "", "signal"},
		{3, "", "reserved"},
	}

	for _, tt := range tests {
		e, err := db.Record(ctx, Entry{Status: tt.status, Command: "deploy", Name: "ignored", Category: "ignored"})
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Time.IsZero())
		assert.Equal(t, tt.name, e.Name, "status %d", tt.status)
		assert.Equal(t, tt.category, e.Category, "status %d", tt.status)
	}

	entries, err := db.ByCommand(ctx, "deploy", 100)
	require.NoError(t, err)
	assert.Len(t, entries, len(tests))
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, status := range []int{0, 80, 100} {
		_, err := db.Record(ctx, Entry{Status: status, Time: base.Add(time.Duration(i) * time.Minute), Note: "n"})
		require.NoError(t, err)
	}

	entries, err := db.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 100, entries[0].Status)
	assert.Equal(t, 80, entries[1].Status)
	assert.True(t, entries[0].Time.Equal(base.Add(2*time.Minute)), "got %v", entries[0].Time)
	assert.Equal(t, "n", entries[0].Note)

	_, err = db.Recent(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestByCategoryAndCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, status := range []int{80, 81, 80, 100, 0} {
		_, err := db.Record(ctx, Entry{Status: status})
		require.NoError(t, err)
	}

	user, err := db.ByCategory(ctx, "user", 10)
	require.NoError(t, err)
	assert.Len(t, user, 3)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{0: 1, 80: 2, 81: 1, 100: 1}, counts)
}

func TestStatsAndPrune(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := db.Record(ctx, Entry{Status: 80, Time: now.AddDate(0, 0, -10)})
	require.NoError(t, err)
	_, err = db.Record(ctx, Entry{Status: 80, Time: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = db.Record(ctx, Entry{Status: 143, Time: now.Add(-time.Minute)})
	require.NoError(t, err)

	stats, err := db.Stats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByCategory["user"])
	assert.Equal(t, int64(1), stats.ByCategory["signal"])
	assert.Equal(t, int64(1), stats.ByStatus[143])

	_, err = db.Stats(ctx, 0)
	assert.Error(t, err)

	pruned, err := db.Prune(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	require.NoError(t, db.Vacuum(ctx))

	entries, err := db.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Record(ctx, Entry{Status: 83})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	entries, err := db.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Forbidden", entries[0].Name)
}

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Model: "chronos-t5-small", Horizon: 5, InputPoints: 10, LatencyMS: 42, Status: "ok", CreatedAt: base},
		{Model: "toto-open-base-1.0", Horizon: 3, InputPoints: 10, LatencyMS: 55, Status: "error", Error: "model not loaded", CreatedAt: base.Add(time.Minute)},
		{Model: "chronos-t5-small", Horizon: 7, InputPoints: 20, LatencyMS: 61, Status: "ok", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(e))
	}

	recent, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 7, recent[0].Horizon, "newest first")
	assert.Equal(t, "toto-open-base-1.0", recent[1].Model)
	assert.Equal(t, "model not loaded", recent[1].Error)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecordFillsCreatedAt(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(Entry{Model: "chronos-t5-small", Horizon: 1, InputPoints: 3, Status: "ok"}))

	recent, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	recent, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

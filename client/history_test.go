package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsfm/history"
	"tsfm/series"
)

func TestPredictRecordsHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c, _ := newTestClient(t, WithHistory(store))

	s, err := series.FromValues([]float64{1, 2, 3})
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), s, WithHorizon(2))
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), s, WithModel("no-such-model"))
	require.Error(t, err)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "error", entries[0].Status)
	assert.Equal(t, "no-such-model", entries[0].Model)
	assert.NotEmpty(t, entries[0].Error)

	assert.Equal(t, "ok", entries[1].Status)
	assert.Equal(t, "chronos-t5-small", entries[1].Model)
	assert.Equal(t, 2, entries[1].Horizon)
	assert.Equal(t, 3, entries[1].InputPoints)
}

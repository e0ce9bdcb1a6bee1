package results

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
)

func TestSQLiteStoreSaveAndQuery(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()

	finished := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	summary := stats.RunSummary{
		RunID: "run-1",
		Stats: stats.Stats{
			Serviced:            5,
			Refuels:             2,
			Cleanings:           1,
			Repairs:             1,
			CumulativeWaitTicks: 12,
			MaxWaitTicks:        6,
		},
		AverageWait: 2.4,
		FinishedAt:  finished,
	}
	require.NoError(t, store.Save(summary))

	got, err := store.Query(finished.Add(-time.Hour), finished.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, summary, got[0])
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()

	finished := time.Now().UTC().Truncate(time.Second)
	summary := stats.RunSummary{RunID: "run-1", FinishedAt: finished}
	require.NoError(t, store.Save(summary))
	summary.Stats.Serviced = 9
	require.NoError(t, store.Save(summary))

	got, err := store.Query(finished.Add(-time.Minute), finished.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Stats.Serviced)
}

func TestSQLiteStoreQueryRange(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(stats.RunSummary{
			RunID:      id,
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := store.Query(base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].RunID)
	assert.Equal(t, "b", got[1].RunID)
}

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratMaciek/Yacht-Port-Simulation/config"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/mqtt"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/results"
)

func testConfig(size int) *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Fleet.Size = size
	cfg.Fleet.Seed = 7
	cfg.Fleet.StaggerMS = 1
	cfg.Crews.ServiceMS = 3
	cfg.Crews.PollMS = 1
	cfg.Vessels.TickMS = 2
	cfg.Vessels.LongWaitTicks = 50
	cfg.Vessels.RefuelStep = 50
	cfg.Vessels.RefuelIntervalMS = 1
	cfg.Vessels.ServiceExtensionMS = 1
	cfg.Vessels.Dwell.Distribution = "uniform"
	cfg.Vessels.Dwell.MinSeconds = 0.002
	cfg.Vessels.Dwell.MaxSeconds = 0.005
	return cfg
}

func TestServiceRunsFleetToCompletion(t *testing.T) {
	cfg := testConfig(3)
	cfg.Fleet.LowOilPct = 0
	cfg.Fleet.CleaningPct = 0
	cfg.Fleet.RepairPct = 0

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	final := svc.Stats.Snapshot()
	assert.Equal(t, 3, final.Serviced)
	assert.Zero(t, final.Refuels)
	assert.Zero(t, svc.Authority.OccupiedCells())
}

func TestServiceRefuelsLowOilFleet(t *testing.T) {
	cfg := testConfig(2)
	cfg.Fleet.LowOilPct = 1

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	final := svc.Stats.Snapshot()
	assert.Equal(t, 2, final.Serviced)
	assert.Equal(t, 2, final.Refuels)
}

func TestServicePublishesSnapshots(t *testing.T) {
	cfg := testConfig(2)
	cfg.Fleet.LowOilPct = 0
	cfg.MQTT.SnapshotIntervalMS = 2
	cfg.Vessels.Dwell.MinSeconds = 0.02
	cfg.Vessels.Dwell.MaxSeconds = 0.03

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	pub := mqtt.NewMockPublisher()
	svc.publisher = pub

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	assert.Greater(t, pub.Count(svc.RunID+"/stats"), 0)
	assert.NotNil(t, pub.Last(svc.RunID+"/grid"))
}

func TestServicePersistsSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(2)
	cfg.Fleet.LowOilPct = 0
	cfg.Results.SQLitePath = filepath.Join(dir, "runs.db")
	cfg.Export.Path = filepath.Join(dir, "summary.json")

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	raw, err := os.ReadFile(cfg.Export.Path)
	require.NoError(t, err)
	var summary stats.RunSummary
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, svc.RunID, summary.RunID)
	assert.Equal(t, 2, summary.Stats.Serviced)

	store, err := results.NewSQLiteStore(cfg.Results.SQLitePath)
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()
	saved, err := store.Query(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, svc.RunID, saved[0].RunID)
}

func TestServiceStatusAPI(t *testing.T) {
	cfg := testConfig(2)
	cfg.API.Enabled = true
	cfg.API.Addr = "127.0.0.1:28080"

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	resp, err := http.Get("http://127.0.0.1:28080/api/status")
	require.NoError(t, err)
	defer func() { assert.NoError(t, resp.Body.Close()) }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, svc.RunID, body["run_id"])
}

func TestServiceJoinsCrewsBeforeReturning(t *testing.T) {
	cfg := testConfig(2)
	cfg.Fleet.LowOilPct = 0
	cfg.Fleet.CleaningPct = 1

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	done := make(chan struct{})
	go func() {
		svc.Crews.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("crew workers still running after Run returned")
	}
	assert.Zero(t, svc.Crews.WorkingCount(crew.Cleaning))
	assert.Zero(t, svc.Crews.WorkingCount(crew.Repair))
}

func TestServiceStopsOnCancel(t *testing.T) {
	cfg := testConfig(2)
	cfg.Fleet.StaggerMS = 1000

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	assert.ErrorIs(t, svc.Run(ctx), context.Canceled)
}

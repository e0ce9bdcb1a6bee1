package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratMaciek/Yacht-Port-Simulation/app"
	"github.com/bratMaciek/Yacht-Port-Simulation/config"
	"github.com/bratMaciek/Yacht-Port-Simulation/test/util"
)

// TestPrometheusEndpointExposesCounters runs a short simulation with the
// Prometheus exporter enabled and scrapes the endpoint.
func TestPrometheusEndpointExposesCounters(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Fleet.Size = 2
	cfg.Fleet.Seed = 3
	cfg.Fleet.StaggerMS = 5
	cfg.Crews.ServiceMS = 5
	cfg.Crews.PollMS = 2
	cfg.Vessels.TickMS = 2
	cfg.Vessels.RefuelIntervalMS = 2
	cfg.Vessels.ServiceExtensionMS = 2
	cfg.Vessels.Dwell.Distribution = "uniform"
	cfg.Vessels.Dwell.MinSeconds = 0.005
	cfg.Vessels.Dwell.MaxSeconds = 0.01
	cfg.Metrics.PrometheusEnabled = true
	cfg.Metrics.PrometheusAddr = "127.0.0.1:29112"

	svc, err := app.New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, svc.Run(ctx))

	waitCtx, waitCancel := context.WithTimeout(ctx, util.MetricTimeout)
	defer waitCancel()
	require.NoError(t, util.WaitForMetric(waitCtx, "http://127.0.0.1:29112/metrics", "port_moorings_total"))
}

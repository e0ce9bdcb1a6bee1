package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/registry"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/logger"
)

func newTestHandler(t *testing.T, token string) (http.Handler, *port.Authority) {
	t.Helper()
	plan := port.QuayPlan{StartGap: 3, GapGrowth: 1, Cols: 12}
	grid := port.NewGrid(3, 12, plan)
	waiting := registry.NewWaitingQueue(10)
	docked := registry.NewDockedRegistry(10)
	authority := port.NewAuthority(grid, waiting, docked, 10, logger.NopLogger{}, nil)
	agg := stats.New()
	crews := crew.New(1, 1, time.Millisecond, time.Millisecond, agg, nil, logger.NopLogger{})
	return NewHandler(authority, crews, agg, "run-test", token), authority
}

func TestStatusEndpoint(t *testing.T) {
	handler, authority := newTestHandler(t, "")

	v := model.Vessel{ID: 1, Length: 10, Width: 5, OilLevel: 90}
	authority.Enqueue(v)
	_, err := authority.Moor(v, model.CellFree)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-test", body["run_id"])
	assert.Equal(t, float64(1), body["occupied_cells"])
	assert.Equal(t, float64(1), body["docked"])
	assert.Equal(t, float64(0), body["waiting"])
}

func TestGridEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/grid", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cells [][]model.Cell
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cells))
	require.Len(t, cells, 3)
	assert.Len(t, cells[0], 12)
	assert.Equal(t, model.CellQuay, cells[0][0].Kind)
}

func TestCrewsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/crews", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var views []crew.MemberView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	assert.Len(t, views, 2)
}

func TestBearerToken(t *testing.T) {
	handler, _ := newTestHandler(t, "secret")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

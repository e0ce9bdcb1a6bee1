// Package status exposes the live port state over HTTP.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
)

// Handler serves read-only snapshots of the running simulation.
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty.
type Handler struct {
	authority *port.Authority
	crews     *crew.Pool
	agg       *stats.Aggregator
	runID     string
	token     string
}

// NewHandler returns an HTTP handler exposing the port state via
// GET /api/status, /api/grid, /api/waiting, /api/docked and /api/crews.
func NewHandler(authority *port.Authority, crews *crew.Pool, agg *stats.Aggregator, runID, token string) http.Handler {
	h := &Handler{authority: authority, crews: crews, agg: agg, runID: runID, token: token}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", h.status)
	mux.HandleFunc("/api/grid", h.grid)
	mux.HandleFunc("/api/waiting", h.waiting)
	mux.HandleFunc("/api/docked", h.docked)
	mux.HandleFunc("/api/crews", h.crewViews)
	return mux
}

func (h *Handler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.token == "" {
		return true
	}
	if r.Header.Get("Authorization") != "Bearer "+h.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	h.respond(w, map[string]any{
		"run_id":         h.runID,
		"stats":          h.agg.Snapshot(),
		"average_wait":   h.agg.AverageWaitTicks(),
		"occupied_cells": h.authority.OccupiedCells(),
		"waiting":        len(h.authority.WaitingList()),
		"docked":         len(h.authority.DockedList()),
	})
}

func (h *Handler) grid(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	h.respond(w, h.authority.GridSnapshot())
}

func (h *Handler) waiting(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	h.respond(w, h.authority.WaitingList())
}

func (h *Handler) docked(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	h.respond(w, h.authority.DockedList())
}

func (h *Handler) crewViews(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	h.respond(w, h.crews.Snapshot())
}

// Serve runs the handler on addr until the context is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Package registry holds the bounded observation mirrors of vessels that are
// waiting for a berth or currently moored. The mirrors are never consulted by
// allocation logic; they exist so renderers and telemetry can read consistent
// snapshots without touching vessel actors.
package registry

import (
	"sort"
	"sync"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

// Entry is an id-keyed snapshot copy of the observable vessel fields.
type Entry struct {
	VesselID      int  `json:"vessel_id"`
	Length        int  `json:"length"`
	Width         int  `json:"width"`
	OilLevel      int  `json:"oil_level"`
	WaitingTicks  int  `json:"waiting_ticks"`
	NeedsCleaning bool `json:"needs_cleaning"`
	NeedsRepair   bool `json:"needs_repair"`
}

// EntryOf copies the observable fields out of a vessel.
func EntryOf(v model.Vessel) Entry {
	return Entry{
		VesselID:      v.ID,
		Length:        v.Length,
		Width:         v.Width,
		OilLevel:      v.OilLevel,
		WaitingTicks:  v.WaitingTicks,
		NeedsCleaning: v.NeedsCleaning,
		NeedsRepair:   v.NeedsRepair,
	}
}

// WaitingQueue mirrors vessels currently polling for a berth, in arrival
// order. Capacity is fixed; insertions beyond it are dropped silently and do
// not gate the vessel's state machine.
type WaitingQueue struct {
	mu      sync.RWMutex
	cap     int
	entries []Entry
}

// NewWaitingQueue creates a queue mirror with the given capacity.
func NewWaitingQueue(capacity int) *WaitingQueue {
	return &WaitingQueue{cap: capacity}
}

// Add appends the entry. It returns false when the queue is at capacity and
// the entry was dropped.
func (q *WaitingQueue) Add(e Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) >= q.cap {
		return false
	}
	q.entries = append(q.entries, e)
	return true
}

// Remove deletes the entry for the vessel, preserving order of the rest.
func (q *WaitingQueue) Remove(id int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.VesselID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateTicks refreshes the observed waiting tick counter for the vessel.
func (q *WaitingQueue) UpdateTicks(id, ticks int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.entries {
		if q.entries[i].VesselID == id {
			q.entries[i].WaitingTicks = ticks
			return
		}
	}
}

// List returns a copy of the entries in arrival order.
func (q *WaitingQueue) List() []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of mirrored entries.
func (q *WaitingQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

// DockedRegistry mirrors vessels currently occupying berth cells.
type DockedRegistry struct {
	mu   sync.RWMutex
	cap  int
	data map[int]Entry
}

// NewDockedRegistry creates a registry mirror with the given capacity.
func NewDockedRegistry(capacity int) *DockedRegistry {
	return &DockedRegistry{cap: capacity, data: make(map[int]Entry)}
}

// Add inserts the entry. It returns false when the registry is at capacity
// and the entry was dropped.
func (r *DockedRegistry) Add(e Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.VesselID]; !ok && len(r.data) >= r.cap {
		return false
	}
	r.data[e.VesselID] = e
	return true
}

// Remove deletes the entry for the vessel.
func (r *DockedRegistry) Remove(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return false
	}
	delete(r.data, id)
	return true
}

// UpdateOil refreshes the observed oil level, so refueling progress is
// visible to snapshot consumers.
func (r *DockedRegistry) UpdateOil(id, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.data[id]; ok {
		e.OilLevel = level
		r.data[id] = e
	}
}

// List returns a copy of the entries sorted by vessel id.
func (r *DockedRegistry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.data))
	for _, e := range r.data {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VesselID < out[j].VesselID })
	return out
}

// Len returns the number of mirrored entries.
func (r *DockedRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

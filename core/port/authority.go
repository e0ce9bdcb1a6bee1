package port

import (
	"fmt"
	"sync"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/events"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/registry"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
)

// Authority serializes all grid mutations. Search-and-reserve, the waiting
// queue removal and the docked registry insertion happen under its single
// critical section, so two concurrent mooring attempts can never both claim
// overlapping cells. Lock order when nesting: Grid -> Queue -> Registry.
type Authority struct {
	mu       sync.Mutex
	grid     *Grid
	waiting  *registry.WaitingQueue
	docked   *registry.DockedRegistry
	slotSize int
	log      logger.Logger
	bus      eventbus.EventBus
}

// NewAuthority wires the grid to its observation mirrors. bus may be nil.
func NewAuthority(grid *Grid, waiting *registry.WaitingQueue, docked *registry.DockedRegistry, slotSize int, log logger.Logger, bus eventbus.EventBus) *Authority {
	return &Authority{
		grid:     grid,
		waiting:  waiting,
		docked:   docked,
		slotSize: slotSize,
		log:      log,
		bus:      bus,
	}
}

// SlotSize returns the meters-per-cell discretization unit.
func (a *Authority) SlotSize() int { return a.slotSize }

// Admit validates a vessel at arrival time. A footprint that can never fit
// the grid is rejected here instead of being left to poll forever.
func (a *Authority) Admit(v model.Vessel) error {
	if err := v.Validate(); err != nil {
		return err
	}
	fp := v.Footprint(a.slotSize)
	if !a.grid.Fits(fp) {
		a.publish(events.VesselRejectedEvent{VesselID: v.ID, Err: ErrUnsatisfiableFootprint, Time: time.Now()})
		return fmt.Errorf("vessel %d (%dx%d cells on %dx%d grid): %w",
			v.ID, fp.Rows, fp.Cols, a.grid.Rows(), a.grid.Cols(), ErrUnsatisfiableFootprint)
	}
	return nil
}

// Enqueue mirrors the vessel into the waiting queue. A full mirror drops the
// entry silently; queue membership never gates placement eligibility.
func (a *Authority) Enqueue(v model.Vessel) {
	mirrored := a.waiting.Add(registry.EntryOf(v))
	if !mirrored {
		a.log.Debugf("waiting queue mirror full, dropping vessel %d", v.ID)
	}
	a.publish(events.QueuedEvent{VesselID: v.ID, Mirrored: mirrored, Time: time.Now()})
}

// ObserveWait refreshes the mirrored waiting tick counter.
func (a *Authority) ObserveWait(id, ticks int) {
	a.waiting.UpdateTicks(id, ticks)
}

// Moor searches for the best placement of the vessel's footprint on cells of
// the given kind and reserves it. On success the vessel leaves the waiting
// mirror and enters the docked mirror within the same critical section.
// Returns ErrNoBerth when no placement currently exists.
func (a *Authority) Moor(v model.Vessel, kind model.CellKind) (model.Position, error) {
	fp := v.Footprint(a.slotSize)

	a.mu.Lock()
	defer a.mu.Unlock()

	pos, ok := a.grid.FindBestSpot(fp, kind)
	if !ok {
		return model.Position{}, ErrNoBerth
	}
	a.grid.Reserve(pos, fp, v.ID)
	a.waiting.Remove(v.ID)
	if !a.docked.Add(registry.EntryOf(v)) {
		a.log.Debugf("docked registry mirror full, dropping vessel %d", v.ID)
	}

	a.log.Debugw("vessel moored", map[string]any{
		"vessel": v.ID, "kind": kind.String(),
		"row": pos.Row, "col": pos.Col,
		"rows": fp.Rows, "cols": fp.Cols,
	})
	a.publish(events.MooredEvent{
		VesselID: v.ID, Kind: kind, Position: pos, Footprint: fp,
		WaitTicks: v.WaitingTicks, Time: time.Now(),
	})
	return pos, nil
}

// Depart releases the vessel's rectangle, restoring each cell to its ambient
// classification, and removes the docked mirror entry. A vessel that never
// moored is a no-op and returns false.
func (a *Authority) Depart(v model.Vessel) bool {
	a.mu.Lock()
	_, _, released := a.grid.Release(v.ID)
	a.docked.Remove(v.ID)
	a.mu.Unlock()

	if !released {
		return false
	}
	a.publish(events.DepartedEvent{VesselID: v.ID, WaitTicks: v.WaitingTicks, Time: time.Now()})
	return true
}

// ObserveOil refreshes the mirrored oil level during refueling.
func (a *Authority) ObserveOil(id, level int) {
	a.docked.UpdateOil(id, level)
}

// GridSnapshot returns a consistent deep copy of the grid cells.
func (a *Authority) GridSnapshot() [][]model.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.grid.Snapshot()
}

// WaitingList returns a snapshot of the waiting mirror in arrival order.
func (a *Authority) WaitingList() []registry.Entry {
	return a.waiting.List()
}

// DockedList returns a snapshot of the docked mirror sorted by vessel ID.
func (a *Authority) DockedList() []registry.Entry {
	return a.docked.List()
}

// OccupiedCells returns the number of reserved cells.
func (a *Authority) OccupiedCells() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.grid.OccupiedCells()
}

func (a *Authority) publish(e eventbus.Event) {
	if a.bus != nil {
		a.bus.Publish(e)
	}
}

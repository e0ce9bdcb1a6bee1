package events

import (
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

// QueuedEvent is published when a vessel enters the waiting queue.
// Mirrored reports whether the bounded queue mirror accepted the entry.
type QueuedEvent struct {
	VesselID int
	Mirrored bool
	Time     time.Time
}

// MooredEvent is published when a berth rectangle is reserved.
type MooredEvent struct {
	VesselID  int
	Kind      model.CellKind
	Position  model.Position
	Footprint model.Footprint
	WaitTicks int
	Time      time.Time
}

// DepartedEvent is published when a vessel releases its berth.
type DepartedEvent struct {
	VesselID  int
	WaitTicks int
	Time      time.Time
}

// CrewAssignedEvent is published when a crew member starts working a vessel.
type CrewAssignedEvent struct {
	CrewID   int
	Kind     string
	VesselID int
	Time     time.Time
}

// CrewReleasedEvent is published when a crew member returns to idle.
type CrewReleasedEvent struct {
	CrewID   int
	Kind     string
	VesselID int
	Time     time.Time
}

// RefuelStartedEvent is published when a vessel begins refueling.
type RefuelStartedEvent struct {
	VesselID int
	OilLevel int
	Time     time.Time
}

// RefuelCompletedEvent is published when oil reaches full.
type RefuelCompletedEvent struct {
	VesselID int
	Time     time.Time
}

// VesselRejectedEvent is published when an arrival fails admission, for
// example a footprint that can never fit the grid.
type VesselRejectedEvent struct {
	VesselID int
	Err      error
	Time     time.Time
}

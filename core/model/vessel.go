package model

import "fmt"

// VesselState enumerates the lifecycle states of a vessel.
type VesselState int

const (
	// VesselWaiting means the vessel is polling for a berth.
	VesselWaiting VesselState = iota
	// VesselDocked means the vessel occupies a Free-class berth.
	VesselDocked
	// VesselRefueling means the vessel occupies a FuelDock berth.
	VesselRefueling
	// VesselLeaving is the terminal state; stats have been recorded.
	VesselLeaving
)

// String returns a human readable state name.
func (s VesselState) String() string {
	switch s {
	case VesselWaiting:
		return "waiting"
	case VesselDocked:
		return "docked"
	case VesselRefueling:
		return "refueling"
	case VesselLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// Vessel represents a yacht moving through the port. It is owned exclusively
// by its actor; registries only ever hold snapshot copies.
type Vessel struct {
	ID            int
	Length        int // meters
	Width         int // meters
	OilLevel      int // 0..100
	NeedsCleaning bool
	NeedsRepair   bool
	State         VesselState
	WaitingTicks  int
}

// Validate checks that the vessel parameters are sound.
func (v Vessel) Validate() error {
	if v.Length <= 0 || v.Width <= 0 {
		return fmt.Errorf("vessel %d: dimensions must be positive, got %dx%d", v.ID, v.Length, v.Width)
	}
	if v.OilLevel < 0 || v.OilLevel > 100 {
		return fmt.Errorf("vessel %d: oil level %d outside [0,100]", v.ID, v.OilLevel)
	}
	return nil
}

// Footprint converts the vessel's physical dimensions into a cell-count
// rectangle for the given slot size in meters per cell.
func (v Vessel) Footprint(slotSize int) Footprint {
	return FootprintFor(v.Length, v.Width, slotSize)
}

// NeedsService reports whether any crew service is still pending.
func (v Vessel) NeedsService() bool {
	return v.NeedsCleaning || v.NeedsRepair
}

package model

// CellKind enumerates what a grid cell currently is.
type CellKind int

const (
	// CellFree is an open berth cell.
	CellFree CellKind = iota
	// CellQuay marks a quay column; never allocatable.
	CellQuay
	// CellFuelDock is a fuel-dock berth cell.
	CellFuelDock
	// CellOccupied means the cell is reserved by a vessel.
	CellOccupied
)

func (k CellKind) String() string {
	switch k {
	case CellFree:
		return "free"
	case CellQuay:
		return "quay"
	case CellFuelDock:
		return "fueldock"
	case CellOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Cell is one grid cell. VesselID is meaningful only when Kind is
// CellOccupied; it is never overloaded as a sentinel elsewhere.
type Cell struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Kind     CellKind `json:"kind"`
	VesselID int      `json:"vessel_id,omitempty"`
}

// Position is a top-left grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Footprint is the rectangular cell-count shape of a reservation.
type Footprint struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the total number of cells covered by the footprint.
func (f Footprint) Cells() int { return f.Rows * f.Cols }

// FootprintFor discretizes physical dimensions into cells: ceil(length/slot)
// rows by ceil(width/slot) columns.
func FootprintFor(length, width, slotSize int) Footprint {
	return Footprint{
		Rows: ceilDiv(length, slotSize),
		Cols: ceilDiv(width, slotSize),
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Package port implements the berth grid, the placement search and the
// moor/depart protocol. The Grid itself is an unsynchronized data structure;
// the Authority owns it and serializes every search-and-reserve against every
// release inside one critical section.
package port

import (
	"math"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

// QuayPlan describes where quay columns sit. Quays start at column 0 and each
// quay is followed by a gap one column larger than the previous one
// (StartGap, StartGap+GapGrowth, ...).
type QuayPlan struct {
	StartGap  int
	GapGrowth int
	Cols      int
}

// QuayColumns returns the quay column indices in increasing order.
func (p QuayPlan) QuayColumns() []int {
	var cols []int
	gap := p.StartGap
	for c := 0; c < p.Cols; c += gap + 1 {
		cols = append(cols, c)
		gap += p.GapGrowth
	}
	return cols
}

// IsQuay reports whether the column is a quay column.
func (p QuayPlan) IsQuay(col int) bool {
	gap := p.StartGap
	for c := 0; c < p.Cols; c += gap + 1 {
		if c == col {
			return true
		}
		if c > col {
			return false
		}
		gap += p.GapGrowth
	}
	return false
}

// Classify returns the ambient kind of a non-quay column: FuelDock when the
// most recent quay column index exceeds half the total column count, Free
// otherwise. The same function is applied at grid construction and when a
// reservation is released, so the two can never disagree.
func (p QuayPlan) Classify(col int) model.CellKind {
	prev := 0
	gap := p.StartGap
	for c := 0; c < p.Cols && c <= col; c += gap + 1 {
		prev = c
		gap += p.GapGrowth
	}
	if prev > p.Cols/2 {
		return model.CellFuelDock
	}
	return model.CellFree
}

// Grid is the rows x cols berth substrate. Not safe for concurrent use; the
// Authority is the only writer.
type Grid struct {
	rows  int
	cols  int
	plan  QuayPlan
	cells [][]model.Cell
}

// NewGrid builds the grid, marking quay columns and classifying every other
// column through the plan.
func NewGrid(rows, cols int, plan QuayPlan) *Grid {
	plan.Cols = cols
	g := &Grid{rows: rows, cols: cols, plan: plan}
	g.cells = make([][]model.Cell, rows)
	for r := 0; r < rows; r++ {
		g.cells[r] = make([]model.Cell, cols)
		for c := 0; c < cols; c++ {
			kind := plan.Classify(c)
			if plan.IsQuay(c) {
				kind = model.CellQuay
			}
			g.cells[r][c] = model.Cell{Row: r, Col: c, Kind: kind}
		}
	}
	return g
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Plan returns the quay plan used to build the grid.
func (g *Grid) Plan() QuayPlan { return g.plan }

// Fits reports whether the footprint can ever be placed on this grid.
func (g *Grid) Fits(fp model.Footprint) bool {
	return fp.Rows > 0 && fp.Cols > 0 && fp.Rows <= g.rows && fp.Cols <= g.cols
}

// quayDistance returns the column distance from col to the nearest quay
// column, searching left and right independently and taking the smaller.
func (g *Grid) quayDistance(col int) int {
	best := math.MaxInt
	for c := col; c >= 0; c-- {
		if g.plan.IsQuay(c) {
			best = col - c
			break
		}
	}
	for c := col; c < g.cols; c++ {
		if g.plan.IsQuay(c) {
			if d := c - col; d < best {
				best = d
			}
			break
		}
	}
	return best
}

// FindBestSpot scans all top-left positions, row-major, where every cell of
// the footprint currently equals kind. A position's score is the minimum
// quay distance over the columns it spans; the smallest score wins, ties
// broken by encounter order (lowest row, then lowest column).
func (g *Grid) FindBestSpot(fp model.Footprint, kind model.CellKind) (model.Position, bool) {
	bestScore := math.MaxInt
	var best model.Position
	found := false
	for r := 0; r+fp.Rows <= g.rows; r++ {
		for c := 0; c+fp.Cols <= g.cols; c++ {
			if !g.matches(r, c, fp, kind) {
				continue
			}
			score := math.MaxInt
			for cc := c; cc < c+fp.Cols; cc++ {
				if d := g.quayDistance(cc); d < score {
					score = d
				}
			}
			if score < bestScore {
				bestScore = score
				best = model.Position{Row: r, Col: c}
				found = true
			}
		}
	}
	return best, found
}

func (g *Grid) matches(row, col int, fp model.Footprint, kind model.CellKind) bool {
	for r := row; r < row+fp.Rows; r++ {
		for c := col; c < col+fp.Cols; c++ {
			if g.cells[r][c].Kind != kind {
				return false
			}
		}
	}
	return true
}

// Reserve marks every cell of the rectangle as occupied by the vessel. The
// caller must have just validated the position via FindBestSpot under the
// same critical section.
func (g *Grid) Reserve(pos model.Position, fp model.Footprint, vesselID int) {
	for r := pos.Row; r < pos.Row+fp.Rows; r++ {
		for c := pos.Col; c < pos.Col+fp.Cols; c++ {
			g.cells[r][c].Kind = model.CellOccupied
			g.cells[r][c].VesselID = vesselID
		}
	}
}

// Release restores every cell held by the vessel to the kind Classify
// produces for its column. Reservations are always one contiguous rectangle,
// so the bounding box of the vessel's cells is returned. A vessel that never
// docked is a no-op.
func (g *Grid) Release(vesselID int) (model.Position, model.Footprint, bool) {
	minR, minC := g.rows, g.cols
	maxR, maxC := -1, -1
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := &g.cells[r][c]
			if cell.Kind == model.CellOccupied && cell.VesselID == vesselID {
				if r < minR {
					minR = r
				}
				if c < minC {
					minC = c
				}
				if r > maxR {
					maxR = r
				}
				if c > maxC {
					maxC = c
				}
				cell.Kind = g.plan.Classify(c)
				cell.VesselID = 0
			}
		}
	}
	if maxR < 0 {
		return model.Position{}, model.Footprint{}, false
	}
	return model.Position{Row: minR, Col: minC},
		model.Footprint{Rows: maxR - minR + 1, Cols: maxC - minC + 1}, true
}

// OccupiedCells counts the cells currently reserved by any vessel.
func (g *Grid) OccupiedCells() int {
	n := 0
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].Kind == model.CellOccupied {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a deep copy of the cells.
func (g *Grid) Snapshot() [][]model.Cell {
	out := make([][]model.Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]model.Cell, g.cols)
		copy(out[r], g.cells[r])
	}
	return out
}

package port

import (
	"testing"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
)

func TestQuayColumnsGrowingGaps(t *testing.T) {
	plan := QuayPlan{StartGap: 3, GapGrowth: 1, Cols: 20}
	got := plan.QuayColumns()
	// Gaps 3,4,5,... between consecutive quays.
	want := []int{0, 4, 9, 15}
	if len(got) != len(want) {
		t.Fatalf("quay columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("quay columns = %v, want %v", got, want)
		}
	}
	for _, c := range want {
		if !plan.IsQuay(c) {
			t.Errorf("IsQuay(%d) = false", c)
		}
	}
	if plan.IsQuay(5) || plan.IsQuay(14) {
		t.Error("non-quay column reported as quay")
	}
}

func TestClassifyFuelDockPastHalf(t *testing.T) {
	plan := QuayPlan{StartGap: 3, GapGrowth: 1, Cols: 12}
	// Quays at 0, 4, 9. Columns after quay 9 (index > 6) are fuel dock.
	for _, c := range []int{1, 2, 3, 5, 6, 7, 8} {
		if k := plan.Classify(c); k != model.CellFree {
			t.Errorf("Classify(%d) = %v, want free", c, k)
		}
	}
	for _, c := range []int{10, 11} {
		if k := plan.Classify(c); k != model.CellFuelDock {
			t.Errorf("Classify(%d) = %v, want fueldock", c, k)
		}
	}
}

func TestNewGridMatchesClassify(t *testing.T) {
	g := NewGrid(3, 12, QuayPlan{StartGap: 3, GapGrowth: 1})
	snap := g.Snapshot()
	plan := g.Plan()
	for r := 0; r < 3; r++ {
		for c := 0; c < 12; c++ {
			want := plan.Classify(c)
			if plan.IsQuay(c) {
				want = model.CellQuay
			}
			if snap[r][c].Kind != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", r, c, snap[r][c].Kind, want)
			}
		}
	}
}

func TestFindBestSpotPrefersQuayDistance(t *testing.T) {
	// Quays at 0 and 4; distance-1 candidates are columns 1, 3 and 5.
	g := NewGrid(4, 8, QuayPlan{StartGap: 3, GapGrowth: 1})
	fp := model.Footprint{Rows: 1, Cols: 1}

	pos, ok := g.FindBestSpot(fp, model.CellFree)
	if !ok {
		t.Fatal("expected a placement")
	}
	if pos.Row != 0 || pos.Col != 1 {
		t.Fatalf("tie must break to lowest row then column, got %+v", pos)
	}

	g.Reserve(pos, fp, 1)
	pos, ok = g.FindBestSpot(fp, model.CellFree)
	if !ok || pos.Row != 0 || pos.Col != 3 {
		t.Fatalf("next distance-1 candidate expected at (0,3), got %+v ok=%v", pos, ok)
	}
}

func TestFindBestSpotKindFilter(t *testing.T) {
	g := NewGrid(2, 12, QuayPlan{StartGap: 3, GapGrowth: 1})
	pos, ok := g.FindBestSpot(model.Footprint{Rows: 1, Cols: 2}, model.CellFuelDock)
	if !ok {
		t.Fatal("expected a fuel dock placement")
	}
	if pos.Col != 10 {
		t.Fatalf("fuel dock rectangle must start at column 10, got %+v", pos)
	}
	// Nothing 3 cells wide exists on the fuel dock side.
	if _, ok := g.FindBestSpot(model.Footprint{Rows: 1, Cols: 3}, model.CellFuelDock); ok {
		t.Fatal("unexpected oversized fuel dock placement")
	}
}

func TestReserveReleaseRestoresClassification(t *testing.T) {
	g := NewGrid(3, 12, QuayPlan{StartGap: 3, GapGrowth: 1})
	before := g.Snapshot()

	fp := model.Footprint{Rows: 2, Cols: 2}
	pos, ok := g.FindBestSpot(fp, model.CellFuelDock)
	if !ok {
		t.Fatal("expected fuel dock placement")
	}
	g.Reserve(pos, fp, 42)
	if g.OccupiedCells() != fp.Cells() {
		t.Fatalf("occupied = %d, want %d", g.OccupiedCells(), fp.Cells())
	}

	relPos, relFp, released := g.Release(42)
	if !released || relPos != pos || relFp != fp {
		t.Fatalf("release mismatch: pos=%+v fp=%+v released=%v", relPos, relFp, released)
	}
	after := g.Snapshot()
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("cell (%d,%d) not restored: %+v != %+v", r, c, after[r][c], before[r][c])
			}
		}
	}
}

func TestReleaseUnknownVesselNoop(t *testing.T) {
	g := NewGrid(2, 8, QuayPlan{StartGap: 3, GapGrowth: 1})
	if _, _, released := g.Release(99); released {
		t.Fatal("release of unknown vessel must be a no-op")
	}
}

func TestReservationsAreDisjoint(t *testing.T) {
	g := NewGrid(4, 8, QuayPlan{StartGap: 3, GapGrowth: 1})
	fp := model.Footprint{Rows: 2, Cols: 2}
	placed := 0
	for id := 1; ; id++ {
		pos, ok := g.FindBestSpot(fp, model.CellFree)
		if !ok {
			break
		}
		g.Reserve(pos, fp, id)
		placed++
	}
	if placed == 0 {
		t.Fatal("expected at least one placement")
	}
	// Occupied cells must partition exactly into the reserved footprints.
	if g.OccupiedCells() != placed*fp.Cells() {
		t.Fatalf("occupied = %d, want %d", g.OccupiedCells(), placed*fp.Cells())
	}
	owners := map[int]int{}
	for _, row := range g.Snapshot() {
		for _, cell := range row {
			if cell.Kind == model.CellOccupied {
				owners[cell.VesselID]++
			}
		}
	}
	for id, n := range owners {
		if n != fp.Cells() {
			t.Fatalf("vessel %d holds %d cells, want %d", id, n, fp.Cells())
		}
	}
}

func TestFits(t *testing.T) {
	g := NewGrid(3, 8, QuayPlan{StartGap: 3, GapGrowth: 1})
	if !g.Fits(model.Footprint{Rows: 3, Cols: 8}) {
		t.Fatal("exact-size footprint must fit")
	}
	if g.Fits(model.Footprint{Rows: 4, Cols: 1}) || g.Fits(model.Footprint{Rows: 1, Cols: 9}) {
		t.Fatal("oversized footprint must not fit")
	}
}

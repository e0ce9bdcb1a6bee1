package scenarios

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/registry"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/vessel"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
)

// RunScenario admits every vessel, runs their lifecycles to completion and
// compares the final counters against the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	plan := port.QuayPlan{StartGap: 3, GapGrowth: 1, Cols: sc.Port.Cols}
	grid := port.NewGrid(sc.Port.Rows, sc.Port.Cols, plan)
	waiting := registry.NewWaitingQueue(len(sc.Vessels) + 1)
	docked := registry.NewDockedRegistry(len(sc.Vessels) + 1)
	bus := eventbus.New()
	authority := port.NewAuthority(grid, waiting, docked, 10, logger.NopLogger{}, bus)

	agg := stats.New()
	crews := crew.New(sc.Crews.Cleaning, sc.Crews.Repair,
		5*time.Millisecond, time.Millisecond, agg, bus, logger.NopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	crews.Start(ctx)

	cfg := vessel.Config{
		TickInterval:     2 * time.Millisecond,
		LowOilThreshold:  50,
		LongWaitTicks:    30,
		RefuelStep:       50,
		RefuelInterval:   time.Millisecond,
		ServiceExtension: time.Millisecond,
	}

	rejected := 0
	var wg sync.WaitGroup
	for _, def := range sc.Vessels {
		v := def.ToModel()
		if err := authority.Admit(v); err != nil {
			rejected++
			continue
		}
		actor := vessel.NewActor(v, authority, crews, agg,
			vessel.FixedDwell(5*time.Millisecond), cfg, logger.NopLogger{}, bus)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := actor.Run(ctx); err != nil {
				t.Errorf("vessel %d: %v", v.ID, err)
			}
		}()
	}
	wg.Wait()

	final := agg.Snapshot()
	if final.Serviced != sc.Expected.Serviced {
		t.Errorf("serviced = %d, want %d", final.Serviced, sc.Expected.Serviced)
	}
	if final.Refuels != sc.Expected.Refuels {
		t.Errorf("refuels = %d, want %d", final.Refuels, sc.Expected.Refuels)
	}
	if final.Cleanings != sc.Expected.Cleanings {
		t.Errorf("cleanings = %d, want %d", final.Cleanings, sc.Expected.Cleanings)
	}
	if final.Repairs != sc.Expected.Repairs {
		t.Errorf("repairs = %d, want %d", final.Repairs, sc.Expected.Repairs)
	}
	if rejected != sc.Expected.Rejected {
		t.Errorf("rejected = %d, want %d", rejected, sc.Expected.Rejected)
	}
	if got := authority.OccupiedCells(); got != 0 {
		t.Errorf("occupied cells after run = %d, want 0", got)
	}
}

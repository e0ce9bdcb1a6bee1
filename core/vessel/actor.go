// Package vessel drives one concurrent actor per yacht through the
// Waiting -> Docked/Refueling -> Leaving lifecycle. All waiting is polling
// with a fixed tick interval; no lock is held across a sleep.
package vessel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/crew"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/events"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
)

// Config parameterizes the state machine timing and thresholds.
type Config struct {
	// TickInterval is the polling interval for berth retries.
	TickInterval time.Duration
	// LowOilThreshold: below it only fuel-dock placements are requested.
	LowOilThreshold int
	// LongWaitTicks: at or above it a failed free placement falls back to
	// the fuel dock.
	LongWaitTicks int
	// RefuelStep is the oil gained per refuel increment.
	RefuelStep int
	// RefuelInterval separates refuel increments.
	RefuelInterval time.Duration
	// ServiceExtension is the extra dwell added per completed crew service.
	ServiceExtension time.Duration
}

// Validate rejects unusable timing parameters.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("vessel: tick interval must be positive")
	}
	if c.RefuelStep <= 0 {
		return fmt.Errorf("vessel: refuel step must be positive")
	}
	if c.RefuelInterval <= 0 {
		return fmt.Errorf("vessel: refuel interval must be positive")
	}
	return nil
}

// Actor owns its vessel exclusively; external readers get snapshot copies.
type Actor struct {
	mu sync.Mutex
	v  model.Vessel

	port  *port.Authority
	crews *crew.Pool
	agg   *stats.Aggregator
	bus   eventbus.EventBus
	log   logger.Logger
	cfg   Config
	dwell DwellSampler
}

// NewActor builds the actor for an already admitted vessel.
func NewActor(v model.Vessel, authority *port.Authority, crews *crew.Pool, agg *stats.Aggregator, dwell DwellSampler, cfg Config, log logger.Logger, bus eventbus.EventBus) *Actor {
	v.State = model.VesselWaiting
	return &Actor{
		v:     v,
		port:  authority,
		crews: crews,
		agg:   agg,
		bus:   bus,
		log:   log,
		cfg:   cfg,
		dwell: dwell,
	}
}

// Vessel returns a snapshot copy of the vessel.
func (a *Actor) Vessel() model.Vessel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v
}

// State returns the current lifecycle state.
func (a *Actor) State() model.VesselState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v.State
}

// Run executes the lifecycle until the vessel leaves or ctx is canceled.
func (a *Actor) Run(ctx context.Context) error {
	a.port.Enqueue(a.Vessel())
	for {
		kind, err := a.waitForBerth(ctx)
		if err != nil {
			return err
		}
		if kind == model.CellFree {
			if err := a.dockAndDwell(ctx); err != nil {
				return err
			}
			a.leave()
			return nil
		}
		requeue, err := a.refuel(ctx)
		if err != nil {
			return err
		}
		if !requeue {
			a.leave()
			return nil
		}
	}
}

// waitForBerth polls the authority each tick until a placement succeeds,
// returning the cell kind that was reserved. Low-oil vessels only request
// fuel-dock footprints; others fall back to the fuel dock after the
// long-wait threshold.
func (a *Actor) waitForBerth(ctx context.Context) (model.CellKind, error) {
	for {
		v := a.Vessel()
		if v.OilLevel < a.cfg.LowOilThreshold {
			if _, err := a.port.Moor(v, model.CellFuelDock); err == nil {
				a.enterBerth(model.VesselRefueling)
				return model.CellFuelDock, nil
			} else if !errors.Is(err, port.ErrNoBerth) {
				return 0, err
			}
		} else {
			if _, err := a.port.Moor(v, model.CellFree); err == nil {
				a.enterBerth(model.VesselDocked)
				return model.CellFree, nil
			} else if !errors.Is(err, port.ErrNoBerth) {
				return 0, err
			}
			if v.WaitingTicks >= a.cfg.LongWaitTicks {
				if _, err := a.port.Moor(v, model.CellFuelDock); err == nil {
					a.enterBerth(model.VesselRefueling)
					return model.CellFuelDock, nil
				} else if !errors.Is(err, port.ErrNoBerth) {
					return 0, err
				}
			}
		}

		a.mu.Lock()
		a.v.WaitingTicks++
		ticks := a.v.WaitingTicks
		id := a.v.ID
		a.mu.Unlock()
		a.port.ObserveWait(id, ticks)

		if !sleepCtx(ctx, a.cfg.TickInterval) {
			return 0, ctx.Err()
		}
	}
}

func (a *Actor) enterBerth(state model.VesselState) {
	a.mu.Lock()
	a.v.State = state
	a.mu.Unlock()
}

// dockAndDwell runs the Docked state: sequential crew services, the sampled
// dwell plus per-service extensions, then release.
func (a *Actor) dockAndDwell(ctx context.Context) error {
	v := a.Vessel()
	extra := time.Duration(0)

	if v.NeedsCleaning {
		if err := a.crews.Service(ctx, crew.Cleaning, v.ID); err != nil {
			return err
		}
		a.mu.Lock()
		a.v.NeedsCleaning = false
		a.mu.Unlock()
		extra += a.cfg.ServiceExtension
	}
	if v.NeedsRepair {
		if err := a.crews.Service(ctx, crew.Repair, v.ID); err != nil {
			return err
		}
		a.mu.Lock()
		a.v.NeedsRepair = false
		a.mu.Unlock()
		extra += a.cfg.ServiceExtension
	}

	dwell := a.dwell.Sample() + extra
	a.log.Debugf("vessel %d dwelling for %s", v.ID, dwell)
	if !sleepCtx(ctx, dwell) {
		return ctx.Err()
	}
	a.port.Depart(a.Vessel())
	return nil
}

// refuel runs the Refueling state. It reports whether the vessel re-enters
// Waiting because a crew service is still pending.
func (a *Actor) refuel(ctx context.Context) (bool, error) {
	v := a.Vessel()
	a.agg.RecordRefuel()
	a.publish(events.RefuelStartedEvent{VesselID: v.ID, OilLevel: v.OilLevel, Time: time.Now()})

	for {
		a.mu.Lock()
		done := a.v.OilLevel >= 100
		a.mu.Unlock()
		if done {
			break
		}
		if !sleepCtx(ctx, a.cfg.RefuelInterval) {
			return false, ctx.Err()
		}
		a.mu.Lock()
		a.v.OilLevel += a.cfg.RefuelStep
		if a.v.OilLevel > 100 {
			a.v.OilLevel = 100
		}
		level := a.v.OilLevel
		a.mu.Unlock()
		a.port.ObserveOil(v.ID, level)
	}

	a.publish(events.RefuelCompletedEvent{VesselID: v.ID, Time: time.Now()})
	a.port.Depart(a.Vessel())

	a.mu.Lock()
	pending := a.v.NeedsService()
	if pending {
		a.v.WaitingTicks = 0
		a.v.State = model.VesselWaiting
	}
	snapshot := a.v
	a.mu.Unlock()

	if pending {
		a.port.Enqueue(snapshot)
	}
	return pending, nil
}

// leave records the terminal stats; the vessel is never mutated afterwards.
func (a *Actor) leave() {
	a.mu.Lock()
	a.v.State = model.VesselLeaving
	ticks := a.v.WaitingTicks
	id := a.v.ID
	a.mu.Unlock()

	a.agg.RecordServiced(ticks)
	a.log.Infof("vessel %d leaving after %d waiting ticks", id, ticks)
}

func (a *Actor) publish(e eventbus.Event) {
	if a.bus != nil {
		a.bus.Publish(e)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

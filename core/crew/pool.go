// Package crew implements the service crew pools and the rendezvous protocol
// vessels use to wait for a crew member's completion.
package crew

import (
	"context"
	"sync"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/events"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/logger"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
)

// Kind selects a crew partition.
type Kind int

const (
	// Cleaning crews wash docked vessels.
	Cleaning Kind = iota
	// Repair crews fix docked vessels.
	Repair
)

func (k Kind) String() string {
	if k == Repair {
		return "repair"
	}
	return "cleaning"
}

// State is the crew member's activity state.
type State int

const (
	// Idle means the member can be assigned.
	Idle State = iota
	// Working means the member is servicing its assigned vessel.
	Working
)

// member is pool-internal. assigned is an explicit optional reference; the
// vessel id is never reused as an in-band sentinel.
type member struct {
	id       int
	kind     Kind
	state    State
	assigned *int
}

// MemberView is the read-only snapshot of one crew member.
type MemberView struct {
	ID             int    `json:"id"`
	Kind           string `json:"kind"`
	State          string `json:"state"`
	AssignedVessel *int   `json:"assigned_vessel,omitempty"`
}

// Pool holds the two fixed crew partitions. Assignment is a single
// independently locked critical section; no ordering is guaranteed against
// grid placements.
type Pool struct {
	mu      sync.Mutex
	members map[Kind][]*member

	serviceDuration time.Duration
	pollInterval    time.Duration

	agg *stats.Aggregator
	bus eventbus.EventBus
	log logger.Logger
	wg  sync.WaitGroup
}

// New builds a pool with the given partition sizes. Member ids are unique
// across partitions. agg and bus may be nil.
func New(cleaning, repair int, serviceDuration, pollInterval time.Duration, agg *stats.Aggregator, bus eventbus.EventBus, log logger.Logger) *Pool {
	p := &Pool{
		members:         make(map[Kind][]*member, 2),
		serviceDuration: serviceDuration,
		pollInterval:    pollInterval,
		agg:             agg,
		bus:             bus,
		log:             log,
	}
	id := 0
	for i := 0; i < cleaning; i++ {
		p.members[Cleaning] = append(p.members[Cleaning], &member{id: id, kind: Cleaning})
		id++
	}
	for i := 0; i < repair; i++ {
		p.members[Repair] = append(p.members[Repair], &member{id: id, kind: Repair})
		id++
	}
	return p
}

// Size returns the number of members in the partition.
func (p *Pool) Size(kind Kind) int {
	return len(p.members[kind])
}

// Start launches one autonomous worker goroutine per crew member. Workers
// stop when ctx is canceled; Wait joins them.
func (p *Pool) Start(ctx context.Context) {
	for _, part := range p.members {
		for _, m := range part {
			p.wg.Add(1)
			go func(m *member) {
				defer p.wg.Done()
				p.work(ctx, m)
			}(m)
		}
	}
}

// Wait blocks until all crew workers have exited.
func (p *Pool) Wait() { p.wg.Wait() }

// work polls the member's own state. Once assigned it works for the fixed
// service duration, then resets itself to idle and clears the assignment.
func (p *Pool) work(ctx context.Context, m *member) {
	for {
		if !sleepCtx(ctx, p.pollInterval) {
			return
		}
		p.mu.Lock()
		busy := m.state == Working
		p.mu.Unlock()
		if !busy {
			continue
		}
		if !sleepCtx(ctx, p.serviceDuration) {
			return
		}
		p.mu.Lock()
		vessel := 0
		if m.assigned != nil {
			vessel = *m.assigned
		}
		m.state = Idle
		m.assigned = nil
		p.mu.Unlock()
		p.log.Debugf("crew %d (%s) finished vessel %d", m.id, m.kind, vessel)
		p.publish(events.CrewReleasedEvent{CrewID: m.id, Kind: m.kind.String(), VesselID: vessel, Time: time.Now()})
	}
}

// Request scans the partition in index order for the first idle member and
// atomically assigns it to the vessel. It returns false when every member is
// busy; callers retry on the polling interval. There is no queueing
// discipline, so a requester can be starved by a steady stream of competing
// requests.
func (p *Pool) Request(kind Kind, vesselID int) (int, bool) {
	p.mu.Lock()
	for _, m := range p.members[kind] {
		if m.state == Idle {
			v := vesselID
			m.state = Working
			m.assigned = &v
			p.mu.Unlock()
			if p.agg != nil {
				if kind == Cleaning {
					p.agg.RecordCleaning()
				} else {
					p.agg.RecordRepair()
				}
			}
			p.publish(events.CrewAssignedEvent{CrewID: m.id, Kind: kind.String(), VesselID: vesselID, Time: time.Now()})
			return m.id, true
		}
	}
	p.mu.Unlock()
	return 0, false
}

// Rendezvous blocks until the crew member is no longer assigned to the
// vessel, polling at the configured interval. The service duration a vessel
// experiences is therefore the crew's own work duration.
func (p *Pool) Rendezvous(ctx context.Context, kind Kind, crewID, vesselID int) error {
	for {
		p.mu.Lock()
		done := true
		for _, m := range p.members[kind] {
			if m.id == crewID && m.assigned != nil && *m.assigned == vesselID {
				done = false
				break
			}
		}
		p.mu.Unlock()
		if done {
			return nil
		}
		if !sleepCtx(ctx, p.pollInterval) {
			return ctx.Err()
		}
	}
}

// Service acquires a crew member of the given kind, retrying while none is
// idle, and then waits out the rendezvous.
func (p *Pool) Service(ctx context.Context, kind Kind, vesselID int) error {
	for {
		if id, ok := p.Request(kind, vesselID); ok {
			return p.Rendezvous(ctx, kind, id, vesselID)
		}
		if !sleepCtx(ctx, p.pollInterval) {
			return ctx.Err()
		}
	}
}

// WorkingCount returns the number of busy members in the partition.
func (p *Pool) WorkingCount(kind Kind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, m := range p.members[kind] {
		if m.state == Working {
			n++
		}
	}
	return n
}

// Snapshot returns read-only views of every crew member.
func (p *Pool) Snapshot() []MemberView {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []MemberView
	for _, kind := range []Kind{Cleaning, Repair} {
		for _, m := range p.members[kind] {
			view := MemberView{ID: m.id, Kind: m.kind.String(), State: "idle"}
			if m.state == Working {
				view.State = "working"
			}
			if m.assigned != nil {
				v := *m.assigned
				view.AssignedVessel = &v
			}
			out = append(out, view)
		}
	}
	return out
}

func (p *Pool) publish(e eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

// sleepCtx sleeps for d unless ctx is canceled first; it reports whether the
// full duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

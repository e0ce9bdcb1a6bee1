// Package stats accumulates throughput and fairness counters for the port.
package stats

import "sync"

// Stats is a snapshot of the aggregate counters. All fields are monotonically
// non-decreasing; MaxWaitTicks is a monotone max, the rest are commutative
// increments, so update order across vessels does not matter.
type Stats struct {
	Serviced            int `json:"serviced"`
	CumulativeWaitTicks int `json:"cumulative_wait_ticks"`
	MaxWaitTicks        int `json:"max_wait_ticks"`
	Cleanings           int `json:"cleanings"`
	Repairs             int `json:"repairs"`
	Refuels             int `json:"refuels"`
}

// Aggregator guards the counters with a single mutex. It is updated at crew
// assignment, at refuel start and at vessel termination.
type Aggregator struct {
	mu sync.Mutex
	s  Stats
}

// New creates an empty aggregator.
func New() *Aggregator { return &Aggregator{} }

// RecordServiced registers a terminated vessel and its accumulated wait.
func (a *Aggregator) RecordServiced(waitTicks int) {
	a.mu.Lock()
	a.s.Serviced++
	a.s.CumulativeWaitTicks += waitTicks
	if waitTicks > a.s.MaxWaitTicks {
		a.s.MaxWaitTicks = waitTicks
	}
	a.mu.Unlock()
}

// RecordCleaning counts a cleaning crew assignment.
func (a *Aggregator) RecordCleaning() {
	a.mu.Lock()
	a.s.Cleanings++
	a.mu.Unlock()
}

// RecordRepair counts a repair crew assignment.
func (a *Aggregator) RecordRepair() {
	a.mu.Lock()
	a.s.Repairs++
	a.mu.Unlock()
}

// RecordRefuel counts a refuel start.
func (a *Aggregator) RecordRefuel() {
	a.mu.Lock()
	a.s.Refuels++
	a.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (a *Aggregator) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.s
}

// AverageWaitTicks returns the mean wait over serviced vessels, 0 when none.
func (a *Aggregator) AverageWaitTicks() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.s.Serviced == 0 {
		return 0
	}
	return float64(a.s.CumulativeWaitTicks) / float64(a.s.Serviced)
}

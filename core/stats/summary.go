package stats

import "time"

// RunSummary is the final outcome of one simulation run.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	Stats       Stats     `json:"stats"`
	AverageWait float64   `json:"average_wait_ticks"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Summarize snapshots the aggregator into a RunSummary.
func (a *Aggregator) Summarize(runID string, finishedAt time.Time) RunSummary {
	return RunSummary{
		RunID:       runID,
		Stats:       a.Snapshot(),
		AverageWait: a.AverageWaitTicks(),
		FinishedAt:  finishedAt,
	}
}

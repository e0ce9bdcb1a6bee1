// Package export writes run summaries to JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
)

// WriteJSON writes the run summary to w in JSON format.
func WriteJSON(w io.Writer, summary stats.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// WriteCSV writes the run summary to w as a single CSV record with headers.
func WriteCSV(w io.Writer, summary stats.RunSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"run_id", "serviced", "refuels", "cleanings", "repairs",
		"cumulative_wait_ticks", "max_wait_ticks", "average_wait_ticks", "finished_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := []string{
		summary.RunID,
		strconv.Itoa(summary.Stats.Serviced),
		strconv.Itoa(summary.Stats.Refuels),
		strconv.Itoa(summary.Stats.Cleanings),
		strconv.Itoa(summary.Stats.Repairs),
		strconv.Itoa(summary.Stats.CumulativeWaitTicks),
		strconv.Itoa(summary.Stats.MaxWaitTicks),
		strconv.FormatFloat(summary.AverageWait, 'f', 2, 64),
		summary.FinishedAt.Format(time.RFC3339),
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

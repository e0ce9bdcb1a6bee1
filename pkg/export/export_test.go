package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
)

func sampleSummary() stats.RunSummary {
	return stats.RunSummary{
		RunID: "run-7",
		Stats: stats.Stats{
			Serviced:            4,
			CumulativeWaitTicks: 10,
			MaxWaitTicks:        5,
			Cleanings:           2,
			Repairs:             1,
			Refuels:             3,
		},
		AverageWait: 2.5,
		FinishedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSummary()))

	var got stats.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleSummary(), got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummary()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id")
	assert.Contains(t, lines[1], "run-7")
	assert.Contains(t, lines[1], "2.50")
	assert.Contains(t, lines[1], "2026-08-01T09:00:00Z")
}

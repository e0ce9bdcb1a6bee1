// Package metrics defines the interfaces and record types for exporting port
// throughput telemetry. Sinks like PromSink and InfluxSink live in
// infra/metrics and can be combined with NewMultiSink; the event collector
// feeds them from the internal event bus. These exports are observational;
// the authoritative counters live in core/stats.
package metrics

import (
	"fmt"
	"time"
)

// MooringRecord captures one successful berth reservation.
type MooringRecord struct {
	VesselID  int
	Kind      string
	Row       int
	Col       int
	WaitTicks int
	Time      time.Time
}

// DepartureRecord captures one berth release.
type DepartureRecord struct {
	VesselID  int
	WaitTicks int
	Time      time.Time
}

// ServiceRecord captures one crew assignment.
type ServiceRecord struct {
	VesselID int
	CrewID   int
	Kind     string
	Time     time.Time
}

// RefuelRecord captures a refuel start.
type RefuelRecord struct {
	VesselID int
	OilLevel int
	Time     time.Time
}

// MetricsSink records port lifecycle telemetry.
type MetricsSink interface {
	RecordMooring(MooringRecord) error
	RecordDeparture(DepartureRecord) error
	RecordService(ServiceRecord) error
	RecordRefuel(RefuelRecord) error
}

// OccupancyRecorder is optionally implemented by sinks that track the number
// of reserved grid cells.
type OccupancyRecorder interface {
	RecordOccupancy(cells int) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordMooring(MooringRecord) error     { return nil }
func (NopSink) RecordDeparture(DepartureRecord) error { return nil }
func (NopSink) RecordService(ServiceRecord) error     { return nil }
func (NopSink) RecordRefuel(RefuelRecord) error       { return nil }
func (NopSink) RecordOccupancy(int) error             { return nil }

// Config selects which sinks the service builds.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies the default Prometheus listen address.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks that enabled sinks are fully configured.
func (c Config) Validate() error {
	if c.InfluxEnabled {
		if c.InfluxURL == "" || c.InfluxOrg == "" || c.InfluxBucket == "" {
			return fmt.Errorf("metrics: influx enabled but url/org/bucket missing")
		}
	}
	return nil
}

package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"
	"github.com/bratMaciek/Yacht-Port-Simulation/infra/logger"
)

// InfluxSink writes port events to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// when the health check fails, so a missing database never stalls the port.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordMooring writes a mooring point.
func (s *InfluxSink) RecordMooring(r coremetrics.MooringRecord) error {
	p := write.NewPointWithMeasurement("mooring").
		AddTag("vessel_id", strconv.Itoa(r.VesselID)).
		AddTag("kind", r.Kind).
		AddField("row", r.Row).
		AddField("col", r.Col).
		AddField("wait_ticks", r.WaitTicks).
		SetTime(r.Time)
	return s.write(p)
}

// RecordDeparture writes a departure point.
func (s *InfluxSink) RecordDeparture(r coremetrics.DepartureRecord) error {
	p := write.NewPointWithMeasurement("departure").
		AddTag("vessel_id", strconv.Itoa(r.VesselID)).
		AddField("wait_ticks", r.WaitTicks).
		SetTime(r.Time)
	return s.write(p)
}

// RecordService writes a crew service point.
func (s *InfluxSink) RecordService(r coremetrics.ServiceRecord) error {
	p := write.NewPointWithMeasurement("crew_service").
		AddTag("vessel_id", strconv.Itoa(r.VesselID)).
		AddTag("crew_id", strconv.Itoa(r.CrewID)).
		AddTag("kind", r.Kind).
		AddField("count", 1).
		SetTime(r.Time)
	return s.write(p)
}

// RecordRefuel writes a refuel point.
func (s *InfluxSink) RecordRefuel(r coremetrics.RefuelRecord) error {
	p := write.NewPointWithMeasurement("refuel").
		AddTag("vessel_id", strconv.Itoa(r.VesselID)).
		AddField("oil_level", r.OilLevel).
		SetTime(r.Time)
	return s.write(p)
}

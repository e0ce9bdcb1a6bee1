package metrics

import (
	coremetrics "github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records port events in Prometheus metrics.
type PromSink struct {
	moorings   *prometheus.CounterVec
	departures prometheus.Counter
	services   *prometheus.CounterVec
	refuels    prometheus.Counter
	waitTicks  prometheus.Histogram
	occupancy  prometheus.Gauge
}

// NewPromSink registers the port metrics on the default Prometheus
// registerer. The HTTP server is started separately via StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		moorings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "port_moorings_total",
			Help: "Total berth reservations by cell kind",
		}, []string{"kind"}),
		departures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "port_departures_total",
			Help: "Total berth releases",
		}),
		services: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "port_crew_services_total",
			Help: "Total crew assignments by crew kind",
		}, []string{"kind"}),
		refuels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "port_refuels_total",
			Help: "Total refuel sessions started",
		}),
		waitTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "port_wait_ticks",
			Help:    "Waiting ticks accumulated before mooring",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "port_occupied_cells",
			Help: "Grid cells currently reserved",
		}),
	}
	collectors := []prometheus.Collector{
		s.moorings, s.departures, s.services, s.refuels, s.waitTicks, s.occupancy,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordMooring increments the mooring counter and observes the wait.
func (s *PromSink) RecordMooring(r coremetrics.MooringRecord) error {
	s.moorings.WithLabelValues(r.Kind).Inc()
	s.waitTicks.Observe(float64(r.WaitTicks))
	return nil
}

// RecordDeparture increments the departure counter.
func (s *PromSink) RecordDeparture(coremetrics.DepartureRecord) error {
	s.departures.Inc()
	return nil
}

// RecordService increments the per-kind crew counter.
func (s *PromSink) RecordService(r coremetrics.ServiceRecord) error {
	s.services.WithLabelValues(r.Kind).Inc()
	return nil
}

// RecordRefuel increments the refuel counter.
func (s *PromSink) RecordRefuel(coremetrics.RefuelRecord) error {
	s.refuels.Inc()
	return nil
}

// RecordOccupancy sets the occupancy gauge.
func (s *PromSink) RecordOccupancy(cells int) error {
	s.occupancy.Set(float64(cells))
	return nil
}

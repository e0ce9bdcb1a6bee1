package metrics

import coremetrics "github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"

// MultiSink fans records out to multiple sinks, returning the first error.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMooring forwards the record to all sinks.
func (m *MultiSink) RecordMooring(r coremetrics.MooringRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordMooring(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordDeparture forwards the record to all sinks.
func (m *MultiSink) RecordDeparture(r coremetrics.DepartureRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordDeparture(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordService forwards the record to all sinks.
func (m *MultiSink) RecordService(r coremetrics.ServiceRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordService(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordRefuel forwards the record to all sinks.
func (m *MultiSink) RecordRefuel(r coremetrics.RefuelRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRefuel(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancy forwards to sinks implementing OccupancyRecorder.
func (m *MultiSink) RecordOccupancy(cells int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.OccupancyRecorder); ok {
			if err := rec.RecordOccupancy(cells); err != nil {
				return err
			}
		}
	}
	return nil
}

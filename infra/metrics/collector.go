package metrics

import (
	"context"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/events"
	coremetrics "github.com/bratMaciek/Yacht-Port-Simulation/core/metrics"
	"github.com/bratMaciek/Yacht-Port-Simulation/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards port lifecycle
// events to the sink. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.MooredEvent:
					_ = sink.RecordMooring(coremetrics.MooringRecord{
						VesselID:  e.VesselID,
						Kind:      e.Kind.String(),
						Row:       e.Position.Row,
						Col:       e.Position.Col,
						WaitTicks: e.WaitTicks,
						Time:      e.Time,
					})
				case events.DepartedEvent:
					_ = sink.RecordDeparture(coremetrics.DepartureRecord{
						VesselID:  e.VesselID,
						WaitTicks: e.WaitTicks,
						Time:      e.Time,
					})
				case events.CrewAssignedEvent:
					_ = sink.RecordService(coremetrics.ServiceRecord{
						VesselID: e.VesselID,
						CrewID:   e.CrewID,
						Kind:     e.Kind,
						Time:     e.Time,
					})
				case events.RefuelStartedEvent:
					_ = sink.RecordRefuel(coremetrics.RefuelRecord{
						VesselID: e.VesselID,
						OilLevel: e.OilLevel,
						Time:     e.Time,
					})
				}
			}
		}
	}()
}

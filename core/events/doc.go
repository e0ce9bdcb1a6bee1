// Package events defines the port lifecycle events emitted on the event bus.
//
// Available event types:
//   - QueuedEvent: vessel entered the waiting queue
//   - MooredEvent: vessel reserved a berth rectangle
//   - DepartedEvent: vessel released its berth
//   - CrewAssignedEvent / CrewReleasedEvent: service rendezvous lifecycle
//   - RefuelStartedEvent / RefuelCompletedEvent: fuel-dock progress
//   - VesselRejectedEvent: arrival rejected at admission
package events

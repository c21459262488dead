package telemetry

import "github.com/vertiport/evtol-sim/core/events"

// Publisher pushes finished-vehicle summaries to an external consumer.
// The simulation core never depends on an implementation; publishers watch
// the event bus like any other collaborator.
type Publisher interface {
	PublishVehicleSummary(ev events.VehicleDone) error
	Close() error
}

// NopPublisher discards every summary.
type NopPublisher struct{}

func (NopPublisher) PublishVehicleSummary(events.VehicleDone) error { return nil }
func (NopPublisher) Close() error                                   { return nil }

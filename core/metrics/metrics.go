package metrics

import "github.com/vertiport/evtol-sim/core/events"

// Sink records simulation events for observability purposes. Implementations
// must tolerate concurrent calls; vehicles finish independently.
type Sink interface {
	RecordChargeSession(ev events.ChargeSession) error
	RecordFault(ev events.Fault) error
	RecordVehicleDone(ev events.VehicleDone) error
	RecordFleetSize(size int) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordChargeSession(events.ChargeSession) error { return nil }
func (NopSink) RecordFault(events.Fault) error                 { return nil }
func (NopSink) RecordVehicleDone(events.VehicleDone) error     { return nil }
func (NopSink) RecordFleetSize(int) error                      { return nil }

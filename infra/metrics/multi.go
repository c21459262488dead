package metrics

import (
	"github.com/vertiport/evtol-sim/core/events"
	coremetrics "github.com/vertiport/evtol-sim/core/metrics"
)

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordChargeSession forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordChargeSession(ev events.ChargeSession) error {
	for _, s := range m.Sinks {
		if err := s.RecordChargeSession(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFault forwards fault events.
func (m *MultiSink) RecordFault(ev events.Fault) error {
	for _, s := range m.Sinks {
		if err := s.RecordFault(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordVehicleDone forwards terminal vehicle summaries.
func (m *MultiSink) RecordVehicleDone(ev events.VehicleDone) error {
	for _, s := range m.Sinks {
		if err := s.RecordVehicleDone(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFleetSize forwards the fleet size.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if err := s.RecordFleetSize(size); err != nil {
			return err
		}
	}
	return nil
}

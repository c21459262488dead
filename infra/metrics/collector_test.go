package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/model"
	"github.com/vertiport/evtol-sim/infra/logger"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

// recordingSink counts events per kind.
type recordingSink struct {
	mu       sync.Mutex
	sessions int
	faults   int
	done     int
	fleet    int
}

func (r *recordingSink) RecordChargeSession(events.ChargeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions++
	return nil
}

func (r *recordingSink) RecordFault(events.Fault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults++
	return nil
}

func (r *recordingSink) RecordVehicleDone(events.VehicleDone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	return nil
}

func (r *recordingSink) RecordFleetSize(size int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fleet = size
	return nil
}

func TestCollectorForwardsEvents(t *testing.T) {
	bus := eventbus.New()
	sink := &recordingSink{}
	c := NewCollector(bus, sink, logger.NopLogger{})

	bus.Publish(events.ChargeSession{VehicleID: 1, Company: "Alpha Company", Outcome: events.OutcomeCharged, Time: time.Now()})
	bus.Publish(events.Fault{VehicleID: 1, Company: "Alpha Company", Time: time.Now()})
	bus.Publish(events.VehicleDone{VehicleID: 1, Company: "Alpha Company", Metrics: model.Metrics{FlightHours: 2.4}, Time: time.Now()})
	bus.Close()
	c.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.sessions != 1 || sink.faults != 1 || sink.done != 1 {
		t.Fatalf("expected 1/1/1 got %d/%d/%d", sink.sessions, sink.faults, sink.done)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	multi := NewMultiSink(a, b)

	if err := multi.RecordChargeSession(events.ChargeSession{}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := multi.RecordFleetSize(7); err != nil {
		t.Fatalf("fleet: %v", err)
	}
	if a.sessions != 1 || b.sessions != 1 {
		t.Fatalf("session not fanned out: %d/%d", a.sessions, b.sessions)
	}
	if a.fleet != 7 || b.fleet != 7 {
		t.Fatalf("fleet size not fanned out: %d/%d", a.fleet, b.fleet)
	}
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vertiport/evtol-sim/core/events"
)

func TestPromSinkRecordsSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}

	if err := sink.RecordChargeSession(events.ChargeSession{
		VehicleID: 1, Company: "Alpha Company", Outcome: events.OutcomeCharged,
		Wait: 5 * time.Millisecond, Hours: 0.6, InUse: 2, Time: time.Now(),
	}); err != nil {
		t.Fatalf("record session: %v", err)
	}
	if err := sink.RecordChargeSession(events.ChargeSession{
		VehicleID: 2, Company: "Alpha Company", Outcome: events.OutcomeTimeout,
		Wait: 100 * time.Millisecond, Time: time.Now(),
	}); err != nil {
		t.Fatalf("record timeout: %v", err)
	}
	if err := sink.RecordChargeSession(events.ChargeSession{
		VehicleID: 3, Company: "Alpha Company", Outcome: events.OutcomeDeclined,
		Wait: 2 * time.Millisecond, Time: time.Now(),
	}); err != nil {
		t.Fatalf("record declined: %v", err)
	}

	if got := testutil.ToFloat64(sink.sessions.WithLabelValues("Alpha Company", "charged")); got != 1 {
		t.Errorf("charged sessions: expected 1 got %f", got)
	}
	if got := testutil.ToFloat64(sink.sessions.WithLabelValues("Alpha Company", "timeout")); got != 1 {
		t.Errorf("timeout sessions: expected 1 got %f", got)
	}
	// Timeouts and declines never held a charger; the gauge keeps the last
	// admitted snapshot.
	if got := testutil.ToFloat64(sink.inUse); got != 2 {
		t.Errorf("chargers in use: expected 2 got %f", got)
	}
	if count := testutil.CollectAndCount(sink.waits); count == 0 {
		t.Errorf("wait histogram not updated")
	}
}

func TestPromSinkRecordsFaultsAndFleet(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := sink.RecordFault(events.Fault{VehicleID: 1, Company: "Echo Company", Time: time.Now()}); err != nil {
			t.Fatalf("record fault: %v", err)
		}
	}
	if err := sink.RecordFleetSize(20); err != nil {
		t.Fatalf("record fleet: %v", err)
	}
	if got := testutil.ToFloat64(sink.faults.WithLabelValues("Echo Company")); got != 3 {
		t.Errorf("faults: expected 3 got %f", got)
	}
	if got := testutil.ToFloat64(sink.fleet); got != 20 {
		t.Errorf("fleet size: expected 20 got %f", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

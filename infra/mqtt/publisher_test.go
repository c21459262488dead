package mqtt

import (
	"testing"
	"time"

	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/model"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for enabled telemetry without broker")
	}
	cfg.Broker = "tcp://localhost:1883"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled telemetry must not require a broker: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.TopicPrefix != "evtol" {
		t.Fatalf("expected default prefix evtol got %q", cfg.TopicPrefix)
	}
	if cfg.ClientID != "evtol-sim" {
		t.Fatalf("expected default client id got %q", cfg.ClientID)
	}
}

func TestMockPublisherRecords(t *testing.T) {
	pub := NewMockPublisher()
	ev := events.VehicleDone{
		VehicleID: 3,
		Company:   "Charlie Company",
		Metrics:   model.Metrics{FlightHours: 1.2, ChargeHours: 0.4},
		Time:      time.Now(),
	}
	if err := pub.PublishVehicleSummary(ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got := pub.Published()
	if len(got) != 1 || got[0].VehicleID != 3 {
		t.Fatalf("summary not recorded: %+v", got)
	}

	pub.Fail = true
	if err := pub.PublishVehicleSummary(ev); err == nil {
		t.Fatalf("expected publish failure")
	}
	if err := pub.Close(); err != nil || !pub.Closed {
		t.Fatalf("close: %v closed=%v", err, pub.Closed)
	}
}

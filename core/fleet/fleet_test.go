package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/model"
	"github.com/vertiport/evtol-sim/infra/logger"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

func testConfig() Config {
	return Config{Seed: 99}
}

func TestNewAppliesReferenceDefaults(t *testing.T) {
	sim, err := New(testConfig(), logger.NopLogger{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(sim.Vehicles()) != 20 {
		t.Fatalf("expected 20 vehicles got %d", len(sim.Vehicles()))
	}
	if sim.Station().Size() != 3 {
		t.Fatalf("expected 3 chargers got %d", sim.Station().Size())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Chargers = -1
	if _, err := New(cfg, logger.NopLogger{}); err == nil {
		t.Fatalf("expected error for negative charger count")
	}

	cfg = testConfig()
	cfg.Catalog = model.DefaultCatalog()
	cfg.Catalog[0].CruiseSpeed = 0
	if _, err := New(cfg, logger.NopLogger{}); err == nil {
		t.Fatalf("expected error for invalid catalog entry")
	}
}

func TestFleetCompositionReproducible(t *testing.T) {
	a, err := New(testConfig(), logger.NopLogger{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(testConfig(), logger.NopLogger{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := range a.Vehicles() {
		if a.Vehicles()[i].Profile.Company != b.Vehicles()[i].Profile.Company {
			t.Fatalf("vehicle %d differs between seeded runs", i+1)
		}
	}
}

func TestSimulationRunAllVehiclesTerminal(t *testing.T) {
	sim, err := New(testConfig(), logger.NopLogger{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	vehicles := sim.Run(context.Background())
	if len(vehicles) != 20 {
		t.Fatalf("expected 20 finished vehicles got %d", len(vehicles))
	}
	for _, v := range vehicles {
		total := v.Metrics.FlightHours + v.Metrics.ChargeHours
		if total > 3.0+1e-9 {
			t.Fatalf("vehicle %d exceeded window: %v", v.ID, total)
		}
		if v.Metrics.FlightHours <= 0 {
			t.Fatalf("vehicle %d never flew", v.ID)
		}
	}
	if sim.Station().InUse() != 0 {
		t.Fatalf("%d chargers still held after the run", sim.Station().InUse())
	}
	if sim.Station().Waiting() != 0 {
		t.Fatalf("%d stale wait list entries after the run", sim.Station().Waiting())
	}
}

func TestSimulationPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()

	done := make(chan map[int]bool)
	go func() {
		finished := make(map[int]bool)
		for ev := range sub {
			if d, ok := ev.(events.VehicleDone); ok {
				finished[d.VehicleID] = true
			}
		}
		done <- finished
	}()

	sim, err := New(testConfig(), logger.NopLogger{}, WithBus(bus))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sim.Run(context.Background())
	bus.Close()

	finished := <-done
	if len(finished) != 20 {
		t.Fatalf("expected 20 VehicleDone events got %d", len(finished))
	}
}

func TestSimulationRunRespectsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim, err := New(testConfig(), logger.NopLogger{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	start := time.Now()
	sim.Run(ctx)
	if time.Since(start) > time.Second {
		t.Fatalf("canceled run took too long")
	}
}

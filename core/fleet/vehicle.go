package fleet

import (
	"context"
	"math/rand"
	"time"

	"github.com/vertiport/evtol-sim/core/charging"
	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/logger"
	"github.com/vertiport/evtol-sim/core/model"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

// Vehicle is one eVTOL's runtime state. Its own goroutine is the sole
// writer of Remaining and Metrics; no other component touches them.
type Vehicle struct {
	ID      int
	Profile model.Aircraft

	// Remaining is the simulation window budget left, in hours.
	Remaining float64
	Metrics   model.Metrics

	window float64
	rng    *rand.Rand
	log    logger.Logger
	bus    eventbus.EventBus
	pacer  Pacer
}

// NewVehicle creates a vehicle with a full window budget and its own
// deterministic fault RNG derived from the master seed.
func NewVehicle(id int, profile model.Aircraft, window float64, masterSeed int64, log logger.Logger) *Vehicle {
	return &Vehicle{
		ID:        id,
		Profile:   profile,
		Remaining: window,
		window:    window,
		rng:       vehicleRand(masterSeed, id),
		log:       log,
		pacer:     NopPacer{},
	}
}

// Run executes flight/charge cycles until the window is exhausted, a charger
// bid times out, or charging would overrun the window. Missing a charging
// opportunity and declining a session are normal terminal outcomes, never
// errors; the final metrics stand as-is.
func (v *Vehicle) Run(ctx context.Context, st *charging.Station, waitTimeout time.Duration) {
	for v.Remaining > 0 && ctx.Err() == nil {
		v.fly()
		if v.Remaining <= 0 {
			break
		}
		if !v.charge(st, waitTimeout) {
			break
		}
	}
	v.publish(events.VehicleDone{
		VehicleID: v.ID,
		Company:   v.Profile.Company,
		Metrics:   v.Metrics,
		Time:      time.Now(),
	})
	v.log.Debugw("vehicle done", map[string]any{
		"vehicle":      v.ID,
		"company":      v.Profile.Company,
		"flight_hours": v.Metrics.FlightHours,
		"charge_hours": v.Metrics.ChargeHours,
		"faults":       v.Metrics.Faults,
	})
}

// fly advances the vehicle by the longest flight its battery allows, capped
// at the remaining window, and runs one fault trial per flight hour.
func (v *Vehicle) fly() {
	hours := v.Profile.MaxFlightHours()
	if hours > v.Remaining {
		hours = v.Remaining
	}
	if hours <= 0 {
		v.Remaining = 0
		return
	}
	v.Metrics.AddFlight(v.Profile, hours)
	v.Remaining -= hours

	for h := 0.0; h < hours; h += 1.0 {
		if v.rng.Float64() < v.Profile.FaultProb {
			v.Metrics.Faults++
			v.publish(events.Fault{VehicleID: v.ID, Company: v.Profile.Company, Time: time.Now()})
		}
	}
}

// charge bids for a charger and, if admitted, holds it for the bounded
// session. It reports whether the vehicle may fly another cycle.
func (v *Vehicle) charge(st *charging.Station, waitTimeout time.Duration) bool {
	st.Join(v.ID, v.Remaining)
	start := time.Now()
	if !st.Acquire(v.ID, waitTimeout) {
		v.publish(events.ChargeSession{
			VehicleID: v.ID,
			Company:   v.Profile.Company,
			Outcome:   events.OutcomeTimeout,
			Wait:      time.Since(start),
			Time:      time.Now(),
		})
		return false
	}

	hours := v.Profile.ChargeHours
	if hours > v.Remaining {
		hours = v.Remaining
	}
	if v.Metrics.FlightHours+hours > v.window {
		// Session would overrun the window: hand the charger back and stop.
		st.Release()
		v.publish(events.ChargeSession{
			VehicleID: v.ID,
			Company:   v.Profile.Company,
			Outcome:   events.OutcomeDeclined,
			Wait:      time.Since(start),
			Time:      time.Now(),
		})
		return false
	}

	v.pacer.Pace(hours)
	v.Metrics.ChargeHours += hours
	v.Remaining -= hours
	inUse := st.InUse()
	st.Release()
	v.publish(events.ChargeSession{
		VehicleID: v.ID,
		Company:   v.Profile.Company,
		Outcome:   events.OutcomeCharged,
		Wait:      time.Since(start),
		Hours:     hours,
		InUse:     inUse,
		Time:      time.Now(),
	})
	return true
}

func (v *Vehicle) publish(ev eventbus.Event) {
	if v.bus != nil {
		v.bus.Publish(ev)
	}
}

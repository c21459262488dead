package events

import (
	"time"

	"github.com/vertiport/evtol-sim/core/model"
)

// ChargeOutcome classifies how a charger bid ended.
type ChargeOutcome string

const (
	// OutcomeCharged means the vehicle was admitted and completed charging.
	OutcomeCharged ChargeOutcome = "charged"
	// OutcomeTimeout means the bid was not honored within the wait bound.
	OutcomeTimeout ChargeOutcome = "timeout"
	// OutcomeDeclined means charging would have overrun the window.
	OutcomeDeclined ChargeOutcome = "declined"
)

// ChargeSession reports one finished charger bid.
type ChargeSession struct {
	VehicleID int
	Company   string
	Outcome   ChargeOutcome
	Wait      time.Duration // wall-clock time spent bidding
	Hours     float64       // simulated charge duration, zero unless charged
	InUse     int           // chargers held right after the transition
	Time      time.Time
}

// Fault reports one fault triggered during a flight segment.
type Fault struct {
	VehicleID int
	Company   string
	Time      time.Time
}

// VehicleDone reports a vehicle reaching its terminal state.
type VehicleDone struct {
	VehicleID int
	Company   string
	Metrics   model.Metrics
	Time      time.Time
}

package model

import "fmt"

// Aircraft describes the static performance profile of an eVTOL archetype.
// All fields are immutable for the lifetime of a vehicle built from it.
type Aircraft struct {
	Company     string  `json:"company"`
	CruiseSpeed float64 `json:"cruise_speed"` // mph
	BatteryKWh  float64 `json:"battery_kwh"`  // usable capacity
	ChargeHours float64 `json:"charge_hours"` // full recharge duration
	EnergyUse   float64 `json:"energy_use"`   // kWh per mile at cruise
	Passengers  int     `json:"passengers"`   // seats filled per flight
	FaultProb   float64 `json:"fault_prob"`   // per flight-hour Bernoulli probability
}

// Validate checks that the profile is physically sound.
func (a Aircraft) Validate() error {
	if a.Company == "" {
		return fmt.Errorf("company name is required")
	}
	if a.CruiseSpeed <= 0 {
		return fmt.Errorf("%s: cruise speed must be positive", a.Company)
	}
	if a.BatteryKWh <= 0 {
		return fmt.Errorf("%s: battery capacity must be positive", a.Company)
	}
	if a.ChargeHours <= 0 {
		return fmt.Errorf("%s: charge time must be positive", a.Company)
	}
	if a.EnergyUse <= 0 {
		return fmt.Errorf("%s: energy use must be positive", a.Company)
	}
	if a.Passengers <= 0 {
		return fmt.Errorf("%s: passenger count must be positive", a.Company)
	}
	if a.FaultProb < 0 || a.FaultProb > 1 {
		return fmt.Errorf("%s: fault probability must be within [0,1]", a.Company)
	}
	return nil
}

// MaxFlightHours returns the longest contiguous flight a full battery allows.
func (a Aircraft) MaxFlightHours() float64 {
	return a.BatteryKWh / (a.EnergyUse * a.CruiseSpeed)
}

// DefaultCatalog returns the built-in manufacturer archetypes.
func DefaultCatalog() []Aircraft {
	return []Aircraft{
		{Company: "Alpha Company", CruiseSpeed: 120, BatteryKWh: 320, ChargeHours: 0.6, EnergyUse: 1.6, Passengers: 4, FaultProb: 0.25},
		{Company: "Bravo Company", CruiseSpeed: 100, BatteryKWh: 100, ChargeHours: 0.2, EnergyUse: 1.5, Passengers: 5, FaultProb: 0.10},
		{Company: "Charlie Company", CruiseSpeed: 160, BatteryKWh: 220, ChargeHours: 0.8, EnergyUse: 2.2, Passengers: 3, FaultProb: 0.05},
		{Company: "Delta Company", CruiseSpeed: 90, BatteryKWh: 120, ChargeHours: 0.62, EnergyUse: 0.8, Passengers: 2, FaultProb: 0.22},
		{Company: "Echo Company", CruiseSpeed: 30, BatteryKWh: 150, ChargeHours: 0.3, EnergyUse: 5.8, Passengers: 2, FaultProb: 0.61},
	}
}

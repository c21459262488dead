package model

// Metrics accumulates one vehicle's activity over a simulation run.
// The vehicle's own goroutine is the only writer.
type Metrics struct {
	FlightHours    float64 `json:"flight_hours"`
	DistanceMiles  float64 `json:"distance_miles"`
	ChargeHours    float64 `json:"charge_hours"`
	Faults         int     `json:"faults"`
	PassengerMiles float64 `json:"passenger_miles"`
}

// AddFlight records a flight segment of the given duration for the profile.
func (m *Metrics) AddFlight(a Aircraft, hours float64) {
	distance := hours * a.CruiseSpeed
	m.FlightHours += hours
	m.DistanceMiles += distance
	m.PassengerMiles += float64(a.Passengers) * distance
}

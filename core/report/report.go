package report

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vertiport/evtol-sim/core/fleet"
)

// CompanySummary aggregates the vehicles of one manufacturer.
type CompanySummary struct {
	Company          string
	Vehicles         int
	MeanFlightHours  float64
	StdDevFlight     float64
	MeanDistance     float64
	MeanChargeHours  float64
	TotalFaults      int
	TotalPassengerMi float64
}

// Report holds the final per-vehicle and per-company results of one run.
type Report struct {
	Vehicles  []*fleet.Vehicle
	Companies []CompanySummary
}

// Build computes company aggregates from the finished fleet.
func Build(vehicles []*fleet.Vehicle) Report {
	byCompany := make(map[string][]*fleet.Vehicle)
	for _, v := range vehicles {
		byCompany[v.Profile.Company] = append(byCompany[v.Profile.Company], v)
	}

	companies := make([]string, 0, len(byCompany))
	for c := range byCompany {
		companies = append(companies, c)
	}
	sort.Strings(companies)

	r := Report{Vehicles: vehicles}
	for _, c := range companies {
		vs := byCompany[c]
		flight := make([]float64, len(vs))
		distance := make([]float64, len(vs))
		charge := make([]float64, len(vs))
		sum := CompanySummary{Company: c, Vehicles: len(vs)}
		for i, v := range vs {
			flight[i] = v.Metrics.FlightHours
			distance[i] = v.Metrics.DistanceMiles
			charge[i] = v.Metrics.ChargeHours
			sum.TotalFaults += v.Metrics.Faults
			sum.TotalPassengerMi += v.Metrics.PassengerMiles
		}
		sum.MeanFlightHours = stat.Mean(flight, nil)
		if len(flight) > 1 {
			sum.StdDevFlight = stat.StdDev(flight, nil)
		}
		sum.MeanDistance = stat.Mean(distance, nil)
		sum.MeanChargeHours = stat.Mean(charge, nil)
		r.Companies = append(r.Companies, sum)
	}
	return r
}

// Write renders the per-vehicle results and company summary as text.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Simulation Results:"); err != nil {
		return err
	}
	for _, v := range r.Vehicles {
		m := v.Metrics
		_, err := fmt.Fprintf(w,
			"Vehicle %d | %s\n  Flight Time: %.3f h\n  Distance: %.1f mi\n  Charge Time: %.3f h\n  Faults: %d\n  Passenger Miles: %.1f mi\n",
			v.ID, v.Profile.Company, m.FlightHours, m.DistanceMiles, m.ChargeHours, m.Faults, m.PassengerMiles)
		if err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "\nPer company:"); err != nil {
		return err
	}
	for _, c := range r.Companies {
		_, err := fmt.Fprintf(w,
			"%s: %d vehicles | avg flight %.3f h (sd %.3f) | avg distance %.1f mi | avg charge %.3f h | faults %d | passenger miles %.1f\n",
			c.Company, c.Vehicles, c.MeanFlightHours, c.StdDevFlight, c.MeanDistance, c.MeanChargeHours, c.TotalFaults, c.TotalPassengerMi)
		if err != nil {
			return err
		}
	}
	return nil
}

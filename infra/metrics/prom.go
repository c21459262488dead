package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vertiport/evtol-sim/core/events"
	coremetrics "github.com/vertiport/evtol-sim/core/metrics"
)

// PromSink records simulation events in Prometheus metrics.
type PromSink struct {
	sessions *prometheus.CounterVec
	faults   *prometheus.CounterVec
	waits    *prometheus.HistogramVec
	inUse    prometheus.Gauge
	fleet    prometheus.Gauge
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The metrics server should be started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "charge_sessions_total",
		Help: "Charger bids by company and outcome",
	}, []string{"company", "outcome"})
	faults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vehicle_faults_total",
		Help: "Faults triggered during flight",
	}, []string{"company"})
	waits := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "charge_wait_seconds",
		Help:    "Wall-clock time spent bidding for a charger",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"company", "outcome"})
	inUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chargers_in_use",
		Help: "Chargers currently held by vehicles",
	})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_vehicles_total",
		Help: "Number of vehicles in the simulated fleet",
	})

	for _, c := range []prometheus.Collector{sessions, faults, waits, inUse, fleet} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{sessions: sessions, faults: faults, waits: waits, inUse: inUse, fleet: fleet}, nil
}

var _ coremetrics.Sink = (*PromSink)(nil)

// RecordChargeSession increments the session counter and observes the wait.
// Only completed sessions carry a chargers-in-use snapshot; timeouts and
// declines never held a charger and must not move the gauge.
func (s *PromSink) RecordChargeSession(ev events.ChargeSession) error {
	s.sessions.WithLabelValues(ev.Company, string(ev.Outcome)).Inc()
	s.waits.WithLabelValues(ev.Company, string(ev.Outcome)).Observe(ev.Wait.Seconds())
	if ev.Outcome == events.OutcomeCharged {
		s.inUse.Set(float64(ev.InUse))
	}
	return nil
}

// RecordFault increments the fault counter.
func (s *PromSink) RecordFault(ev events.Fault) error {
	s.faults.WithLabelValues(ev.Company).Inc()
	return nil
}

// RecordVehicleDone is a no-op; terminal summaries go to Influx and the report.
func (s *PromSink) RecordVehicleDone(events.VehicleDone) error { return nil }

// RecordFleetSize sets the fleet gauge.
func (s *PromSink) RecordFleetSize(size int) error {
	s.fleet.Set(float64(size))
	return nil
}

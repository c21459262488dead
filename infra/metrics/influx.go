package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/vertiport/evtol-sim/core/events"
	coremetrics "github.com/vertiport/evtol-sim/core/metrics"
	"github.com/vertiport/evtol-sim/infra/logger"
)

// InfluxSink writes simulation events to an InfluxDB instance using the
// official client. Every point is tagged with the run id so repeated runs
// can be compared.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runID    string
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config, runID string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		runID:    runID,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config, runID string) coremetrics.Sink {
	sink := NewInfluxSink(cfg, runID)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordChargeSession writes the session as a point.
func (s *InfluxSink) RecordChargeSession(ev events.ChargeSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("charge_session").
		AddTag("run_id", s.runID).
		AddTag("vehicle_id", strconv.Itoa(ev.VehicleID)).
		AddTag("company", ev.Company).
		AddTag("outcome", string(ev.Outcome)).
		AddField("wait_seconds", ev.Wait.Seconds()).
		AddField("charge_hours", ev.Hours).
		AddField("chargers_in_use", ev.InUse).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordFault writes a fault point.
func (s *InfluxSink) RecordFault(ev events.Fault) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_fault").
		AddTag("run_id", s.runID).
		AddTag("vehicle_id", strconv.Itoa(ev.VehicleID)).
		AddTag("company", ev.Company).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordVehicleDone writes the vehicle's terminal metrics.
func (s *InfluxSink) RecordVehicleDone(ev events.VehicleDone) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_summary").
		AddTag("run_id", s.runID).
		AddTag("vehicle_id", strconv.Itoa(ev.VehicleID)).
		AddTag("company", ev.Company).
		AddField("flight_hours", ev.Metrics.FlightHours).
		AddField("distance_miles", ev.Metrics.DistanceMiles).
		AddField("charge_hours", ev.Metrics.ChargeHours).
		AddField("faults", ev.Metrics.Faults).
		AddField("passenger_miles", ev.Metrics.PassengerMiles).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordFleetSize writes the fleet size once per run.
func (s *InfluxSink) RecordFleetSize(size int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fleet").
		AddTag("run_id", s.runID).
		AddField("vehicles", size).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

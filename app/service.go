package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/vertiport/evtol-sim/config"
	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/fleet"
	coremetrics "github.com/vertiport/evtol-sim/core/metrics"
	"github.com/vertiport/evtol-sim/core/report"
	"github.com/vertiport/evtol-sim/core/telemetry"
	"github.com/vertiport/evtol-sim/infra/logger"
	"github.com/vertiport/evtol-sim/infra/metrics"
	"github.com/vertiport/evtol-sim/infra/mqtt"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

// Service wires configuration, logging, metrics sinks, telemetry and the
// simulation itself for one run.
type Service struct {
	RunID string

	cfg       *config.Config
	sim       *fleet.Simulation
	bus       *eventbus.Bus
	sink      coremetrics.Sink
	publisher telemetry.Publisher
	influx    *metrics.InfluxSink
	log       logger.Logger
	out       io.Writer
}

// New creates a Service from the configuration. Results are written to out.
func New(cfg *config.Config, out io.Writer) (*Service, error) {
	runID := uuid.NewString()
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	var influx *metrics.InfluxSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics, runID)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			influx = is
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher telemetry.Publisher = telemetry.NopPublisher{}
	if cfg.Telemetry.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.Telemetry, runID)
		if err != nil {
			return nil, fmt.Errorf("telemetry publisher: %w", err)
		}
		publisher = pub
	}

	bus := eventbus.New()
	sim, err := fleet.New(cfg.Simulation, logger.New("fleet"), fleet.WithBus(bus))
	if err != nil {
		return nil, fmt.Errorf("build fleet: %w", err)
	}

	return &Service{
		RunID:     runID,
		cfg:       cfg,
		sim:       sim,
		bus:       bus,
		sink:      sink,
		publisher: publisher,
		influx:    influx,
		log:       logg,
		out:       out,
	}, nil
}

// Run executes the simulation, drains the event bus into the sinks and
// writes the final report.
func (s *Service) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if err := s.sink.RecordFleetSize(len(s.sim.Vehicles())); err != nil {
		s.log.Errorf("record fleet size: %v", err)
	}

	collector := metrics.NewCollector(s.bus, s.sink, s.log)
	telem := s.watchTelemetry()

	s.log.Infof("run %s: %d vehicles, %d chargers, %.1fh window, seed %d",
		s.RunID, len(s.sim.Vehicles()), s.sim.Station().Size(), s.cfg.Simulation.WindowHours, s.sim.Seed())
	vehicles := s.sim.Run(ctx)

	s.bus.Close()
	collector.Wait()
	<-telem

	return report.Build(vehicles).Write(s.out)
}

// watchTelemetry forwards finished-vehicle events to the publisher until the
// bus closes.
func (s *Service) watchTelemetry() <-chan struct{} {
	done := make(chan struct{})
	sub := s.bus.Subscribe()
	go func() {
		defer close(done)
		for ev := range sub {
			if v, ok := ev.(events.VehicleDone); ok {
				if err := s.publisher.PublishVehicleSummary(v); err != nil {
					s.log.Errorf("publish summary %d: %v", v.VehicleID, err)
				}
			}
		}
	}()
	return done
}

// Close releases external connections.
func (s *Service) Close() error {
	if s.influx != nil {
		s.influx.Close()
	}
	return s.publisher.Close()
}

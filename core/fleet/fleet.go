package fleet

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vertiport/evtol-sim/core/charging"
	"github.com/vertiport/evtol-sim/core/logger"
	"github.com/vertiport/evtol-sim/core/model"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

// Config holds the simulation parameters.
type Config struct {
	FleetSize   int              `json:"fleet_size"`
	Chargers    int              `json:"chargers"`
	WindowHours float64          `json:"window_hours"`
	WaitTimeout time.Duration    `json:"-"`
	WaitMS      int              `json:"wait_timeout_ms"`
	Seed        int64            `json:"seed"`
	Catalog     []model.Aircraft `json:"catalog"`
}

// SetDefaults applies the reference scenario parameters.
func (c *Config) SetDefaults() {
	if c.FleetSize == 0 {
		c.FleetSize = 20
	}
	if c.Chargers == 0 {
		c.Chargers = 3
	}
	if c.WindowHours == 0 {
		c.WindowHours = 3.0
	}
	if c.WaitMS == 0 {
		c.WaitMS = 100
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = time.Duration(c.WaitMS) * time.Millisecond
	}
	if len(c.Catalog) == 0 {
		c.Catalog = model.DefaultCatalog()
	}
}

// Validate checks the parameters.
func (c Config) Validate() error {
	if c.FleetSize <= 0 {
		return fmt.Errorf("fleet size must be positive")
	}
	if c.Chargers <= 0 {
		return fmt.Errorf("charger count must be positive")
	}
	if c.WindowHours <= 0 {
		return fmt.Errorf("window must be positive")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog must not be empty")
	}
	for _, a := range c.Catalog {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}

// Simulation owns one run's vehicles, wait list and charger pool. It does
// the fan-out/fan-in and nothing else; all coordination lives in the
// charging package.
type Simulation struct {
	cfg      Config
	vehicles []*Vehicle
	station  *charging.Station
	log      logger.Logger
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithPacer makes charger holds consume wall-clock time.
func WithPacer(p Pacer) Option {
	return func(s *Simulation) {
		for _, v := range s.vehicles {
			v.pacer = p
		}
	}
}

// WithBus publishes charge, fault and completion events on the bus.
func WithBus(bus eventbus.EventBus) Option {
	return func(s *Simulation) {
		for _, v := range s.vehicles {
			v.bus = bus
		}
	}
}

// New builds the fleet: FleetSize vehicles with ids 1..N, archetypes drawn
// from the catalog by the seeded fleet RNG, sharing one charging station.
func New(cfg Config, log logger.Logger, opts ...Option) (*Simulation, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cfg:     cfg,
		station: charging.NewStation(cfg.Chargers, log),
		log:     log,
	}
	fleetRng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.FleetSize; i++ {
		profile := cfg.Catalog[fleetRng.Intn(len(cfg.Catalog))]
		s.vehicles = append(s.vehicles, NewVehicle(i+1, profile, cfg.WindowHours, cfg.Seed, log))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Vehicles exposes the fleet; final metrics are valid once Run returned.
func (s *Simulation) Vehicles() []*Vehicle { return s.vehicles }

// Station exposes the shared charger pool.
func (s *Simulation) Station() *charging.Station { return s.station }

// Seed returns the effective master seed of the run.
func (s *Simulation) Seed() int64 { return s.cfg.Seed }

// Run launches every vehicle concurrently and returns once all of them have
// reached a terminal state. Canceling the context stops each vehicle at its
// next cycle boundary.
func (s *Simulation) Run(ctx context.Context) []*Vehicle {
	start := time.Now()
	var wg sync.WaitGroup
	for _, v := range s.vehicles {
		wg.Add(1)
		go func(v *Vehicle) {
			defer wg.Done()
			v.Run(ctx, s.station, s.cfg.WaitTimeout)
		}(v)
	}
	wg.Wait()
	s.log.Infof("simulation finished: %d vehicles in %s", len(s.vehicles), time.Since(start))
	return s.vehicles
}

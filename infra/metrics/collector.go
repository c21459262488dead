package metrics

import (
	"github.com/vertiport/evtol-sim/core/events"
	coremetrics "github.com/vertiport/evtol-sim/core/metrics"
	"github.com/vertiport/evtol-sim/infra/logger"
	"github.com/vertiport/evtol-sim/internal/eventbus"
)

// Collector subscribes to the event bus and forwards simulation events to a
// sink. It keeps the vehicles free of any metrics dependency.
type Collector struct {
	sub  <-chan eventbus.Event
	bus  eventbus.EventBus
	sink coremetrics.Sink
	log  logger.Logger
	done chan struct{}
}

// NewCollector subscribes to the bus and starts consuming.
func NewCollector(bus eventbus.EventBus, sink coremetrics.Sink, log logger.Logger) *Collector {
	c := &Collector{
		sub:  bus.Subscribe(),
		bus:  bus,
		sink: sink,
		log:  log,
		done: make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Collector) run() {
	defer close(c.done)
	for ev := range c.sub {
		var err error
		switch e := ev.(type) {
		case events.ChargeSession:
			err = c.sink.RecordChargeSession(e)
		case events.Fault:
			err = c.sink.RecordFault(e)
		case events.VehicleDone:
			err = c.sink.RecordVehicleDone(e)
		}
		if err != nil {
			c.log.Errorf("record event: %v", err)
		}
	}
}

// Wait blocks until the bus is closed and every buffered event is recorded.
func (c *Collector) Wait() { <-c.done }

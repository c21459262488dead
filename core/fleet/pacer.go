package fleet

import "time"

// Pacer controls whether holding a charger consumes wall-clock time. The
// simulation itself advances logical time only; pacing exists for demos
// that want to watch the fleet contend in real time.
type Pacer interface {
	Pace(simHours float64)
}

// NopPacer advances logical time instantly. Default.
type NopPacer struct{}

func (NopPacer) Pace(float64) {}

// WallClockPacer sleeps PerHour per simulated hour.
type WallClockPacer struct {
	PerHour time.Duration
}

func (p WallClockPacer) Pace(simHours float64) {
	time.Sleep(time.Duration(simHours * float64(p.PerHour)))
}

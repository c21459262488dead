package charging

import (
	"sync"
	"time"

	"github.com/vertiport/evtol-sim/core/logger"
)

// Station is a pool of interchangeable chargers plus the wait list of
// vehicles bidding for one. Both live under a single mutex so that checking
// "I am the most urgent bidder and a charger is free" and taking the permit
// form one atomic transition. Held plus free always equals
// the pool size.
type Station struct {
	mu   sync.Mutex
	cond *sync.Cond
	size int
	free int
	wait *WaitList
	log  logger.Logger
}

// NewStation creates a station with n chargers.
func NewStation(n int, log logger.Logger) *Station {
	s := &Station{
		size: n,
		free: n,
		wait: NewWaitList(),
		log:  log,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Join places a bid for the vehicle, keyed by its remaining window.
// It never blocks.
func (s *Station) Join(id int, remaining float64) {
	s.mu.Lock()
	s.wait.Push(id, remaining)
	s.mu.Unlock()
	s.log.Debugw("joined wait list", map[string]any{"vehicle": id, "remaining": remaining})
}

// Acquire blocks until the vehicle is both at the head of the wait list and
// a charger is free, or until the timeout elapses. On success the permit is
// taken and the bid removed in the same critical section. On timeout the
// bid is withdrawn before returning, so an abandoned wait can never starve
// the vehicles behind it; a timeout is the normal "missed the charging
// opportunity" outcome, not an error.
func (s *Station) Acquire(id int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	// The broadcast takes the mutex so it cannot slip between a waiter's
	// deadline check and its cond.Wait, which would lose the wake-up.
	wake := time.AfterFunc(timeout, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer wake.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if head, ok := s.wait.Peek(); ok && head == id && s.free > 0 {
			s.free--
			s.wait.PopIf(id)
			s.log.Debugw("charger acquired", map[string]any{"vehicle": id, "free": s.free})
			return true
		}
		if !time.Now().Before(deadline) {
			s.wait.Remove(id)
			s.log.Debugw("wait abandoned", map[string]any{"vehicle": id})
			return false
		}
		// Re-check on every wake-up: releases, timer expiry and spurious
		// wake-ups all land here.
		s.cond.Wait()
	}
}

// Release returns a permit and wakes every waiter so the admission
// predicate is re-evaluated.
func (s *Station) Release() {
	s.mu.Lock()
	if s.free >= s.size {
		s.mu.Unlock()
		panic("charging: release without matching acquire")
	}
	s.free++
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Size returns the number of chargers in the pool.
func (s *Station) Size() int { return s.size }

// Free returns the number of unoccupied chargers.
func (s *Station) Free() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.free
}

// InUse returns the number of chargers currently held.
func (s *Station) InUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size - s.free
}

// Waiting returns the number of pending bids.
func (s *Station) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wait.Len()
}

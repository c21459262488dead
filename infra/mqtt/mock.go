package mqtt

import (
	"fmt"
	"sync"

	"github.com/vertiport/evtol-sim/core/events"
)

// MockPublisher records published summaries in memory, for tests.
type MockPublisher struct {
	mu        sync.Mutex
	Summaries []events.VehicleDone
	Fail      bool
	Closed    bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishVehicleSummary stores the summary or returns an error if configured to fail.
func (m *MockPublisher) PublishVehicleSummary(ev events.VehicleDone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Summaries = append(m.Summaries, ev)
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Published returns a snapshot of the recorded summaries.
func (m *MockPublisher) Published() []events.VehicleDone {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.VehicleDone, len(m.Summaries))
	copy(out, m.Summaries)
	return out
}

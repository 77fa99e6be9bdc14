package clock

import (
	"sync"
	"time"
)

// Mock provides a controllable time source for testing
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMock creates a new mock time provider with the given start time
func NewMock(startTime time.Time) *Mock {
	return &Mock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time for the mock
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

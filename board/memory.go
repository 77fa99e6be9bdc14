package board

import (
	"sync"
	"time"

	"github.com/lixenwraith/lightboard/surface"
)

// Memory keeps the last frame for tests and headless runs
type Memory struct {
	mu       sync.Mutex
	rows     int
	cols     int
	interval time.Duration
	last     surface.Frame
	frames   int
	closed   bool
}

// NewMemory creates a headless board
func NewMemory(rows, cols int, interval time.Duration) *Memory {
	return &Memory{rows: rows, cols: cols, interval: refreshOrDefault(interval)}
}

func (m *Memory) Rows() int {
	return m.rows
}

func (m *Memory) Cols() int {
	return m.cols
}

func (m *Memory) RefreshInterval() time.Duration {
	return m.interval
}

func (m *Memory) Dump(f surface.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = f
	m.frames++
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Last returns the most recent frame
func (m *Memory) Last() surface.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Frames returns how many frames were dumped
func (m *Memory) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

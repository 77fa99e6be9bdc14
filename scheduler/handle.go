package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/core"
)

// Handle controls one scheduled periodic task
type Handle struct {
	id       uuid.UUID
	name     string
	interval time.Duration
	fn       func()
	seq      uint64
	next     time.Time // Manual driver deadline
	owner    *Scheduler

	// mu serializes runs against each other and against Cancel
	mu        sync.Mutex
	cancelled atomic.Bool
	isStalled atomic.Bool
	runs      atomic.Uint64
	stallErr  atomic.Pointer[error]

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// ID returns the owning zone's id
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Name returns the task label used in logs
func (h *Handle) Name() string {
	return h.name
}

// Interval returns the tick period
func (h *Handle) Interval() time.Duration {
	return h.interval
}

// Runs returns how many times the task function completed or panicked
func (h *Handle) Runs() uint64 {
	return h.runs.Load()
}

// Cancelled reports whether Cancel was called
func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Stalled reports whether the task panicked and was taken out of rotation
func (h *Handle) Stalled() bool {
	return h.isStalled.Load()
}

// Err returns the panic that stalled the task, nil while it is healthy
func (h *Handle) Err() error {
	if p := h.stallErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (h *Handle) live() bool {
	return !h.cancelled.Load() && !h.isStalled.Load()
}

// Cancel stops the task; once it returns the task function will not start again
// Waits for an in-flight run, so from inside the task use Release
func (h *Handle) Cancel() {
	h.cancelled.Store(true)

	// Acquire mu to wait out a run already in progress
	h.mu.Lock()
	h.mu.Unlock()

	h.release()
	<-h.done
}

// Release stops the task without waiting for a run in progress
// Safe from inside the task: the current run finishes and no other starts
func (h *Handle) Release() {
	h.cancelled.Store(true)
	h.release()
}

func (h *Handle) release() {
	h.stopOnce.Do(func() {
		close(h.stop)
		h.owner.remove(h)
	})
}

// run executes the task once, returns false when the task must not run again
func (h *Handle) run() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.live() {
		return false
	}

	err := core.Run(h.fn)
	h.runs.Add(1)
	h.owner.statTicks.Add(1)

	if err != nil {
		h.isStalled.Store(true)
		var pe *core.PanicError
		if errors.As(err, &pe) {
			err = errors.Wrapf(err, "at %v", pe.Stack)
		}
		h.stallErr.Store(&err)
		h.owner.stalled(h, err)
		return false
	}
	return true
}

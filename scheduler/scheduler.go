// Package scheduler drives periodic zone ticks
// Every task belongs to one zone and carries that zone's id; a task never overlaps itself
package scheduler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/clock"
	"github.com/lixenwraith/lightboard/status"
)

// Scheduler owns a set of cancellable periodic tasks
// The real driver gives each task its own goroutine and timer; the manual driver runs due tasks
// synchronously from Advance so tests can step many ticks without waiting
type Scheduler struct {
	clock  clock.Clock
	mock   *clock.Mock // Non-nil in manual mode
	logger log.Logger

	mu     sync.Mutex
	tasks  map[uuid.UUID]*Handle
	seq    uint64
	closed bool

	// Cached metric pointers
	statTicks  *atomic.Int64
	statStalls *atomic.Int64
	statTasks  *atomic.Int64
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithLogger routes stall reports to logger
func WithLogger(logger log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithRegistry publishes tick, stall and task counts into reg
func WithRegistry(reg *status.Registry) Option {
	return func(s *Scheduler) {
		s.statTicks = reg.Ints.Get("scheduler.ticks")
		s.statStalls = reg.Ints.Get("scheduler.stalls")
		s.statTasks = reg.Ints.Get("scheduler.tasks")
	}
}

// WithClock replaces the time source used for tick deadlines
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// New creates a scheduler backed by real timers
func New(opts ...Option) *Scheduler {
	s := newScheduler(clock.NewReal())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewManual creates a scheduler that only runs tasks when Advance moves the mock clock
func NewManual(c *clock.Mock, opts ...Option) *Scheduler {
	s := newScheduler(c)
	for _, opt := range opts {
		opt(s)
	}
	s.clock = c
	s.mock = c
	return s
}

func newScheduler(c clock.Clock) *Scheduler {
	reg := status.NewRegistry()
	return &Scheduler{
		clock:      c,
		logger:     log.NewLogger(io.Discard, "scheduler"),
		tasks:      make(map[uuid.UUID]*Handle),
		statTicks:  reg.Ints.Get("scheduler.ticks"),
		statStalls: reg.Ints.Get("scheduler.stalls"),
		statTasks:  reg.Ints.Get("scheduler.tasks"),
	}
}

// Clock returns the time source tasks should read
func (s *Scheduler) Clock() clock.Clock {
	return s.clock
}

// Manual reports whether tasks run only from Advance
func (s *Scheduler) Manual() bool {
	return s.mock != nil
}

// Schedule registers fn to run every interval under the owner's id
// The first run happens one interval after scheduling
func (s *Scheduler) Schedule(id uuid.UUID, name string, interval time.Duration, fn func()) (*Handle, error) {
	if interval <= 0 {
		return nil, errors.Errorf("scheduler: task %q has non-positive interval %v", name, interval)
	}
	if fn == nil {
		return nil, errors.Errorf("scheduler: task %q has no function", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Errorf("scheduler: stopped, cannot schedule %q", name)
	}
	if existing, ok := s.tasks[id]; ok && !existing.Cancelled() {
		return nil, errors.Errorf("scheduler: zone %s already has task %q", id, existing.name)
	}

	s.seq++
	h := &Handle{
		id:       id,
		name:     name,
		interval: interval,
		fn:       fn,
		seq:      s.seq,
		next:     s.clock.Now().Add(interval),
		owner:    s,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.tasks[id] = h
	s.statTasks.Add(1)

	if s.mock == nil {
		go s.loop(h)
	} else {
		close(h.done)
	}
	return h, nil
}

// Task returns the live task registered for id
func (s *Scheduler) Task(id uuid.UUID) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.tasks[id]
	return h, ok
}

// Len returns the number of registered tasks
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every task and refuses new ones, safe to call multiple times
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.closed = true
	handles := make([]*Handle, 0, len(s.tasks))
	for _, h := range s.tasks {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

// remove forgets a cancelled task
func (s *Scheduler) remove(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.tasks[h.id]; ok && cur == h {
		delete(s.tasks, h.id)
		s.statTasks.Add(-1)
	}
}

// loop runs one task on real timers with drift correction
func (s *Scheduler) loop(h *Handle) {
	defer close(h.done)

	deadline := h.next
	timer := time.NewTimer(h.interval)
	defer timer.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-timer.C:
		}

		if !h.run() {
			return
		}

		now := s.clock.Now()
		deadline = deadline.Add(h.interval)

		// Resync instead of bursting when the host fell too far behind
		if now.Sub(deadline) > h.interval*2 {
			deadline = now.Add(h.interval)
		}
		timer.Reset(max(deadline.Sub(now), 0))
	}
}

// Advance moves the mock clock forward by d, running every task deadline that falls inside
// Deadlines run in time order, ties in scheduling order; returns the number of runs
func (s *Scheduler) Advance(d time.Duration) int {
	if s.mock == nil {
		panic("scheduler: Advance requires a manual scheduler")
	}

	target := s.mock.Now().Add(d)
	runs := 0
	for {
		h := s.nextDue(target)
		if h == nil {
			break
		}
		s.mock.Set(h.next)
		h.next = h.next.Add(h.interval)
		if h.run() {
			runs++
		}
	}
	s.mock.Set(target)
	return runs
}

// nextDue returns the earliest live task due at or before target
func (s *Scheduler) nextDue(target time.Time) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*Handle, 0, len(s.tasks))
	for _, h := range s.tasks {
		if h.live() && !h.next.After(target) {
			due = append(due, h)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].next.Equal(due[j].next) {
			return due[i].next.Before(due[j].next)
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

// stalled records a task that panicked
func (s *Scheduler) stalled(h *Handle, err error) {
	s.statStalls.Add(1)
	_ = s.logger.Error("task stalled after panic", "task", h.name, "zone", h.id.String(), "err", fmt.Sprintf("%+v", err))
}

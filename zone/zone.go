// Package zone animates content inside a rectangle of a shared surface
// Each zone runs its own in, rest, out cycle on its own tick, independent of every other zone
package zone

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/clock"
	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/status"
	"github.com/lixenwraith/lightboard/surface"
	"github.com/lixenwraith/lightboard/transition"
)

// Content is what a zone positions and draws
// Render draws at the canvas origin and reports whether anything visible landed
type Content interface {
	Size() (width, height int)
	Render(c *Canvas) bool
}

// Validator is implemented by content that can detect wiring mistakes before the first tick
type Validator interface {
	Validate() error
}

// Patterned is implemented by content that transitions can animate
type Patterned interface {
	Pattern() *pattern.Pattern
}

// Primer loads its first item when the zone starts, before the first layout
type Primer interface {
	Prime()
}

// Resizer is told the region size at construction and on every SetRegion, under the zone lock
type Resizer interface {
	Resize(width, height int)
}

// Zone owns one region of a surface and cycles its content through scroll-in, rest and scroll-out
type Zone struct {
	id      uuid.UUID
	cfg     Config
	surf    *surface.Surface
	sched   *scheduler.Scheduler
	clock   clock.Clock
	content Content

	statCompletions *atomic.Int64

	mu          sync.Mutex
	region      core.Region
	contentLeft int // Content origin relative to the region
	contentTop  int
	deltaX      int
	deltaY      int
	restX       int
	restY       int
	resting     bool
	phase       Phase
	lastTick    time.Time
	started     bool
	stopped     bool
	handle      *scheduler.Handle
	handlers    []func()
	completions int
	dispatching bool // Handlers are running with mu released

	// Transition driving the current phase, nil for edge scrolling
	active transition.Transition
	step   int

	paused        atomic.Bool
	resetPending  atomic.Bool
	renderPending atomic.Bool
}

// Option configures a Zone
type Option func(*Zone)

// WithRegistry counts scroll completions in reg
func WithRegistry(reg *status.Registry) Option {
	return func(z *Zone) {
		z.statCompletions = reg.Ints.Get("zone.completions")
	}
}

// WithClock overrides the scheduler's clock for rest timing
func WithClock(c clock.Clock) Option {
	return func(z *Zone) {
		z.clock = c
	}
}

// New binds content to a region of surf, ticking on sched once started
func New(surf *surface.Surface, sched *scheduler.Scheduler, content Content, cfg Config, opts ...Option) *Zone {
	z := &Zone{
		id:              uuid.New(),
		cfg:             cfg,
		surf:            surf,
		sched:           sched,
		clock:           sched.Clock(),
		content:         content,
		statCompletions: new(atomic.Int64),
	}
	if cfg.Region.Width == 0 && cfg.Region.Height == 0 {
		z.region = surf.Bounds()
	} else {
		z.region = surf.SafeRegion(cfg.Region.Left, cfg.Region.Top, cfg.Region.Width, cfg.Region.Height)
	}
	for _, opt := range opts {
		opt(z)
	}
	z.resize()
	return z
}

// ===== LIFECYCLE =====

// Start validates the zone and begins ticking
// The first tick runs one interval later, except for single-render zones which render immediately
func (z *Zone) Start() error {
	if err := z.validate(); err != nil {
		return err
	}

	z.mu.Lock()
	switch {
	case z.stopped:
		z.mu.Unlock()
		return ErrStopped
	case z.started:
		z.mu.Unlock()
		return ErrStarted
	}
	z.started = true
	if p, ok := z.content.(Primer); ok {
		p.Prime()
	}
	z.lastTick = z.clock.Now()
	z.resetScroll()

	if z.cfg.SingleRender {
		z.mu.Unlock()
		z.tick()
		return nil
	}
	defer z.mu.Unlock()

	h, err := z.sched.Schedule(z.id, z.cfg.Name, z.cfg.Tick, z.tick)
	if err != nil {
		z.started = false
		return errors.Wrapf(err, "zone %q", z.cfg.Name)
	}
	z.handle = h
	return nil
}

func (z *Zone) validate() error {
	if z.content == nil {
		return errors.Wrapf(ErrNoContent, "zone %q", z.cfg.Name)
	}
	if err := z.cfg.Validate(); err != nil {
		return err
	}
	if z.cfg.In != nil || z.cfg.Out != nil {
		if _, ok := z.content.(Patterned); !ok {
			return errors.Wrapf(ErrNoPattern, "zone %q", z.cfg.Name)
		}
	}
	if v, ok := z.content.(Validator); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "zone %q", z.cfg.Name)
		}
	}
	return nil
}

// Stop cancels ticking and clears the region, safe to call repeatedly and from a scroll-complete handler
// Once Stop returns the zone draws nothing more
func (z *Zone) Stop() {
	z.mu.Lock()
	if z.stopped {
		z.mu.Unlock()
		return
	}
	z.stopped = true
	h := z.handle
	dispatching := z.dispatching
	z.mu.Unlock()

	// A tick parked in its handlers sees stopped once it relocks, so only a tick outside them is waited out
	if h != nil {
		if dispatching {
			h.Release()
		} else {
			h.Cancel()
		}
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	z.surf.ClearRegion(z.region)
}

// Pause freezes the zone without losing its position
func (z *Zone) Pause() {
	z.paused.Store(true)
}

// Resume unfreezes the zone; a resting zone redraws its frame on its next tick
func (z *Zone) Resume() {
	z.renderPending.Store(true)
	z.paused.Store(false)
}

// ResetScroll restarts the scroll-in phase at the next tick
func (z *Zone) ResetScroll() {
	z.resetPending.Store(true)
}

// OnScrollComplete registers fn to run whenever a cycle ends
// Handlers run one at a time on the zone's tick with the zone unlocked
func (z *Zone) OnScrollComplete(fn func()) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.handlers = append(z.handlers, fn)
}

// SetRegion reclamps and replaces the working region
// A running zone clears its old region and restarts its cycle
func (z *Zone) SetRegion(left, top, width, height int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	old := z.region
	z.region = z.surf.SafeRegion(left, top, width, height)
	z.resize()
	if z.started && !z.stopped {
		z.surf.ClearRegion(old)
		z.resetScroll()
	}
}

// ===== TICK =====

// tick advances the zone by one step
func (z *Zone) tick() {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.stopped || !z.started || z.paused.Load() {
		return
	}
	if z.resetPending.CompareAndSwap(true, false) {
		z.resetScroll()
	}
	if z.phase == Done {
		return
	}

	// Moving zones redraw below anyway
	if z.renderPending.CompareAndSwap(true, false) && z.resting && z.active == nil && z.cfg.AutoRender {
		z.doRender()
		if z.stopped {
			return
		}
	}

	now := z.clock.Now()
	if z.resting {
		if now.Sub(z.lastTick) > z.cfg.RestDuration {
			z.resting = false
			z.initOut()
		}
		return
	}

	if z.active != nil {
		z.stepTransition()
	} else if z.updateScroll() && z.cfg.AutoRender {
		z.doRender()
	}
	z.lastTick = now
}

// resetScroll computes the rest position and moves content to its scroll-in start
func (z *Zone) resetScroll() {
	w, h := z.content.Size()
	z.restX = z.cfg.HAlign.rest(z.region.Width, w)
	z.restY = z.cfg.VAlign.rest(z.region.Height, h)
	z.resting = false
	z.phase = ScrollingIn
	z.active = nil

	if z.cfg.In != nil {
		z.contentLeft, z.contentTop = z.restX, z.restY
		z.deltaX, z.deltaY = 0, 0
		z.beginTransition(z.cfg.In)
		return
	}

	z.deltaX, z.deltaY = z.cfg.From.Entry()
	switch z.cfg.From {
	case core.TopEdge:
		z.contentLeft, z.contentTop = z.restX, -h
	case core.LeftEdge:
		z.contentLeft, z.contentTop = -w, z.restY
	case core.BottomEdge:
		z.contentLeft, z.contentTop = z.restX, z.region.Height
	case core.RightEdge:
		z.contentLeft, z.contentTop = z.region.Width, z.restY
	default:
		z.contentLeft, z.contentTop = z.restX, z.restY
	}
}

// initOut starts the scroll-out phase
func (z *Zone) initOut() {
	z.phase = ScrollingOut
	if z.cfg.Out != nil {
		z.beginTransition(z.cfg.Out)
		return
	}

	z.deltaX, z.deltaY = z.cfg.To.Exit()
	if z.cfg.To == core.NoScroll && z.cfg.AutoReset {
		if !z.complete() {
			return
		}
		z.resetScroll()
	}
}

// updateScroll moves the content one step and settles or recycles it
// Returns false if the zone was stopped by a handler
func (z *Zone) updateScroll() bool {
	z.contentLeft += z.deltaX
	z.contentTop += z.deltaY

	if z.inRestPosition() {
		z.resting = true
		z.phase = Resting
	}
	if z.visible() {
		return true
	}

	switch {
	case z.cfg.AutoReset:
		if !z.complete() {
			return false
		}
		z.resetScroll()
	case z.phase == ScrollingOut:
		z.deltaX, z.deltaY = 0, 0
		z.phase = Done
		return z.complete()
	}
	return true
}

// doRender redraws the region at the current offset
func (z *Zone) doRender() {
	if z.cfg.Clear {
		z.surf.ClearRegion(z.region)
	}

	// Content sitting off-region draws nothing by definition, only an in-region miss means empty content
	if !z.content.Render(z.canvas()) && z.cfg.AutoReset && z.visible() {
		if !z.complete() {
			return
		}
		z.resetScroll()
	}
	z.decorate()
}

func (z *Zone) decorate() {
	if z.cfg.Outline {
		z.surf.OutlineRegion(z.region)
	}
	if z.cfg.Invert {
		z.surf.InvertRegion(z.region)
	}
}

// ===== TRANSITIONS =====

func (z *Zone) beginTransition(tr transition.Transition) {
	z.active = tr
	z.step = 0
	tr.Reset(stage{z})
}

// stepTransition draws the next transition frame or ends its phase
func (z *Zone) stepTransition() {
	tr := z.active
	if !transition.Done(tr, z.step) {
		tr.Animate(stage{z}, transition.Progress(z.step, tr.Steps()))
		z.step++
		z.decorate()
		return
	}

	z.active = nil
	if z.phase == ScrollingIn {
		z.resting = true
		z.phase = Resting
		if z.cfg.AutoRender {
			z.doRender()
		}
		return
	}

	if z.cfg.Clear {
		z.surf.ClearRegion(z.region)
	}
	if z.cfg.AutoReset {
		if z.complete() {
			z.resetScroll()
		}
		return
	}
	z.phase = Done
	z.complete()
}

// ===== PREDICATES =====

// visible reports whether any part of the content overlaps the region
func (z *Zone) visible() bool {
	w, h := z.content.Size()
	return z.contentLeft < z.region.Width && z.contentLeft+w > 0 &&
		z.contentTop < z.region.Height && z.contentTop+h > 0
}

func (z *Zone) inRestPosition() bool {
	w, h := z.content.Size()
	return w <= z.region.Width && h <= z.region.Height &&
		z.contentLeft == z.restX && z.contentTop == z.restY
}

// complete fires the scroll-complete handlers, caller holds mu
// The lock is released while handlers run; returns false if the zone was stopped meanwhile
func (z *Zone) complete() bool {
	z.completions++
	z.statCompletions.Add(1)
	handlers := slices.Clone(z.handlers)

	z.dispatching = true
	func() {
		z.mu.Unlock()
		defer func() {
			z.mu.Lock()
			z.dispatching = false
		}()
		for _, fn := range handlers {
			fn()
		}
	}()
	return !z.stopped
}

// resize passes the region size to content that lays out by it, caller holds mu
func (z *Zone) resize() {
	if r, ok := z.content.(Resizer); ok {
		r.Resize(z.region.Width, z.region.Height)
	}
}

func (z *Zone) canvas() *Canvas {
	return &Canvas{
		surf:   z.surf,
		region: z.region,
		x:      z.region.Left + z.contentLeft,
		y:      z.region.Top + z.contentTop,
	}
}

// ===== ACCESSORS =====

// ID returns the identity tagging the zone's scheduler task
func (z *Zone) ID() uuid.UUID {
	return z.id
}

// Name returns the configured name
func (z *Zone) Name() string {
	return z.cfg.Name
}

// Config returns the configuration the zone was built with
func (z *Zone) Config() Config {
	return z.cfg
}

func (z *Zone) Region() core.Region {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.region
}

func (z *Zone) Phase() Phase {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.phase
}

func (z *Zone) Resting() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.resting
}

// Offset returns the content origin relative to the region
func (z *Zone) Offset() (left, top int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.contentLeft, z.contentTop
}

// Rest returns the aligned rest offset
func (z *Zone) Rest() (x, y int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.restX, z.restY
}

// Deltas returns the per-tick scroll step
func (z *Zone) Deltas() (dx, dy int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.deltaX, z.deltaY
}

// Completions returns how many cycles have ended
func (z *Zone) Completions() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.completions
}

func (z *Zone) Paused() bool {
	return z.paused.Load()
}

func (z *Zone) Stopped() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.stopped
}

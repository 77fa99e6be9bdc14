// Package scene assembles a running board from a scene configuration
package scene

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/board"
	"github.com/lixenwraith/lightboard/config"
	"github.com/lixenwraith/lightboard/font"
	"github.com/lixenwraith/lightboard/message"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/status"
	"github.com/lixenwraith/lightboard/surface"
	"github.com/lixenwraith/lightboard/zone"
)

var (
	ErrStarted = errors.New("scene: already started")
	ErrStopped = errors.New("scene: stopped")
)

// configSource is the group source id for messages listed inline in the scene file
const configSource = "scene"

// starter is what every zone kind offers on top of the embedded *zone.Zone
type starter interface {
	Start() error
}

type entry struct {
	zone  *zone.Zone
	start starter
	text  *zone.TextZone
}

// Scene owns the surface, scheduler, zones and refresher built from one config
type Scene struct {
	cfg    *config.Scene
	logger log.Logger
	reg    *status.Registry

	surf      *surface.Surface
	board     board.Board
	sched     *scheduler.Scheduler
	refresher *board.Refresher
	updater   *message.Updater
	paused    *atomic.Bool

	zones  []entry
	byName map[string]entry
	groups map[string]*message.Group

	mu      sync.Mutex
	started bool
	stopped bool
}

// Option adjusts how a scene is built
type Option func(*options)

type options struct {
	sched    *scheduler.Scheduler
	notifier message.Notifier
	reg      *status.Registry
}

// WithScheduler drives the zones from sched instead of a fresh real-time scheduler
func WithScheduler(sched *scheduler.Scheduler) Option {
	return func(o *options) {
		o.sched = sched
	}
}

// WithNotifier is told about every message posted through the updater
func WithNotifier(n message.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithRegistry collects metrics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// Build creates every zone of cfg on a surface sized to the board
// Nothing ticks until Start
func Build(cfg *config.Scene, b board.Board, logger log.Logger, opts ...Option) (*Scene, error) {
	if cfg == nil {
		return nil, errors.Wrap(config.ErrInvalid, "scene: nil config")
	}
	if b == nil {
		return nil, errors.New("scene: nil board")
	}
	if logger == nil {
		logger = log.NewLogger(io.Discard, "scene")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reg == nil {
		o.reg = status.NewRegistry()
	}
	if o.sched == nil {
		o.sched = scheduler.New(scheduler.WithLogger(logger), scheduler.WithRegistry(o.reg))
	}

	s := &Scene{
		cfg:    cfg,
		logger: logger,
		reg:    o.reg,
		surf:   surface.New(b.Rows(), b.Cols(), cfg.Board.SurfaceKind()),
		board:  b,
		sched:  o.sched,
		byName: make(map[string]entry, len(cfg.Zones)),
		groups: make(map[string]*message.Group),
		paused: o.reg.Bools.Get("scene.paused"),
	}
	s.refresher = board.NewRefresher(s.surf, b, logger, s.reg)

	var targets []message.Target
	for _, zc := range cfg.Zones {
		e, err := s.buildZone(zc)
		if err != nil {
			return nil, err
		}
		s.zones = append(s.zones, e)
		s.byName[zc.Name] = e
		if e.text != nil {
			targets = append(targets, e.text)
		}
	}

	s.updater = message.NewUpdater(targets...)
	if o.notifier != nil {
		s.updater.SetNotifier(o.notifier)
	}

	logger.Info("scene built", "zones", len(s.zones), "rows", b.Rows(), "cols", b.Cols())
	return s, nil
}

func (s *Scene) buildZone(zc config.Zone) (entry, error) {
	cfg, err := zc.ZoneConfig()
	if err != nil {
		return entry{}, err
	}
	zopts := []zone.Option{zone.WithRegistry(s.reg)}

	var fontOpts []font.Option
	if opt, _ := zc.FontColour(); opt != nil {
		fontOpts = append(fontOpts, opt)
	}

	switch zc.Kind {
	case config.KindText:
		group, err := s.loadGroup(zc)
		if err != nil {
			return entry{}, err
		}
		tz := zone.NewText(s.surf, s.sched, font.Default(fontOpts...), group, cfg, zopts...)
		return entry{zone: tz.Zone, start: tz, text: tz}, nil

	case config.KindClock:
		cz := zone.NewClock(s.surf, s.sched, font.Default(fontOpts...), cfg, zopts...)
		if zc.BinDay != "" {
			day, _ := zc.Weekday()
			cz.SetBinDay(day)
		}
		return entry{zone: cz.Zone, start: cz}, nil

	case config.KindPattern:
		pz := zone.NewPattern(s.surf, s.sched, pattern.FromRows(zc.Pattern...), cfg, zopts...)
		return entry{zone: pz.Zone, start: pz}, nil
	}
	return entry{}, errors.Wrapf(config.ErrInvalid, "zone %q: unknown kind %q", zc.Name, zc.Kind)
}

// loadGroup collects inline messages and any message directory into one group
func (s *Scene) loadGroup(zc config.Zone) (*message.Group, error) {
	group := message.NewGroup()
	if len(zc.Messages) > 0 {
		group.Add(configSource, zc.Messages...)
	}
	if zc.Dir != "" {
		loader := message.NewLoader(zc.Dir, s.logger)
		if err := loader.Discover(); err != nil {
			return nil, errors.Wrapf(err, "zone %q", zc.Name)
		}
		n, err := loader.LoadInto(group)
		if err != nil {
			return nil, errors.Wrapf(err, "zone %q", zc.Name)
		}
		s.logger.Debug("messages loaded", "zone", zc.Name, "dir", zc.Dir, "count", n)
	}
	s.groups[zc.Name] = group
	return group, nil
}

// Start starts every zone and the frame refresher
// If a zone fails to start the ones already running are stopped again
func (s *Scene) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.stopped:
		return ErrStopped
	case s.started:
		return ErrStarted
	}

	for i, e := range s.zones {
		if err := e.start.Start(); err != nil {
			for _, prev := range s.zones[:i] {
				prev.zone.Stop()
			}
			return errors.Wrapf(err, "start zone %q", e.zone.Name())
		}
	}
	s.started = true

	// Manual scenes push frames through Refresh
	if !s.sched.Manual() {
		s.refresher.Start()
	}
	s.logger.Info("scene started", "zones", len(s.zones))
	return nil
}

// Stop halts all zones, blanks the board and stops the refresher, safe to call repeatedly
// The board itself stays open, it belongs to the caller
func (s *Scene) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true

	for _, e := range s.zones {
		e.zone.Stop()
	}
	s.sched.Stop()
	s.refresher.Stop()

	s.surf.ClearSurface()
	if _, err := s.refresher.Refresh(); err != nil {
		s.logger.Warn("final refresh failed", "err", err)
	}
	s.logger.Info("scene stopped")
}

// Pause freezes every zone
func (s *Scene) Pause() {
	s.paused.Store(true)
	for _, e := range s.zones {
		e.zone.Pause()
	}
}

// Resume unfreezes every zone
func (s *Scene) Resume() {
	s.paused.Store(false)
	for _, e := range s.zones {
		e.zone.Resume()
	}
}

// Paused reports whether Pause was called last
func (s *Scene) Paused() bool {
	return s.paused.Load()
}

// Refresh pushes the current frame to the board if it changed
func (s *Scene) Refresh() (bool, error) {
	return s.refresher.Refresh()
}

// Zone looks up a zone by name
func (s *Scene) Zone(name string) (*zone.Zone, bool) {
	e, ok := s.byName[name]
	return e.zone, ok
}

// Text looks up a text zone by name
func (s *Scene) Text(name string) (*zone.TextZone, bool) {
	e, ok := s.byName[name]
	if !ok || e.text == nil {
		return nil, false
	}
	return e.text, true
}

// Group returns the message group feeding a text zone
func (s *Scene) Group(name string) (*message.Group, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Zones returns the zone names in configuration order
func (s *Scene) Zones() []string {
	names := make([]string, len(s.zones))
	for i, e := range s.zones {
		names[i] = e.zone.Name()
	}
	return names
}

func (s *Scene) Updater() *message.Updater {
	return s.updater
}

func (s *Scene) Surface() *surface.Surface {
	return s.surf
}

func (s *Scene) Scheduler() *scheduler.Scheduler {
	return s.sched
}

func (s *Scene) Registry() *status.Registry {
	return s.reg
}

// OpenBoard creates the backend named by cfg
// Text boards write to out; terminal boards take over the controlling terminal
func OpenBoard(cfg config.Board, out io.Writer) (board.Board, error) {
	switch cfg.Backend {
	case config.BackendText:
		return board.NewText(out, cfg.Rows, cfg.Cols, cfg.Refresh.Std()), nil
	case config.BackendMemory:
		return board.NewMemory(cfg.Rows, cfg.Cols, cfg.Refresh.Std()), nil
	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap(err, "open terminal")
		}
		term, err := board.NewTerminal(screen, cfg.Rows, cfg.Cols, cfg.Refresh.Std(), cfg.BoardMode())
		if err != nil {
			return nil, err
		}
		return term, nil
	}
	return nil, errors.Wrapf(config.ErrInvalid, "unknown backend %q", cfg.Backend)
}

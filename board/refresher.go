package board

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/mgutz/logxi/v1"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/status"
	"github.com/lixenwraith/lightboard/surface"
)

// Refresher pushes the surface to a board on the board's refresh interval
// A frame is only pushed when the surface changed since the last push
type Refresher struct {
	surf   *surface.Surface
	board  Board
	logger log.Logger

	statFrames *atomic.Int64
	statErrors *atomic.Int64
	statDumpMs *status.AtomicFloat // Smoothed dump latency

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
	lastGen  uint64
	pushed   bool
}

// NewRefresher binds surf to b, logger and reg may be nil
func NewRefresher(surf *surface.Surface, b Board, logger log.Logger, reg *status.Registry) *Refresher {
	if logger == nil {
		logger = log.NewLogger(io.Discard, "board")
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Refresher{
		surf:       surf,
		board:      b,
		logger:     logger,
		statFrames: reg.Ints.Get("board.frames"),
		statErrors: reg.Ints.Get("board.errors"),
		statDumpMs: reg.Floats.Get("board.dump_ms"),
	}
}

// Refresh pushes the current frame if the surface changed, returns whether a frame was pushed
func (r *Refresher) Refresh() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gen := r.surf.Generation()
	if r.pushed && gen == r.lastGen {
		return false, nil
	}
	f := r.surf.Frame()
	start := time.Now()
	err := r.board.Dump(f)
	r.statDumpMs.Smooth(float64(time.Since(start))/float64(time.Millisecond), 0.1)
	if err != nil {
		r.statErrors.Add(1)
		return false, err
	}
	r.lastGen = f.Generation
	r.pushed = true
	r.statFrames.Add(1)
	return true, nil
}

// Start begins pushing frames in the background, no-op if already running
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stopChan = make(chan struct{})
	r.done = make(chan struct{})

	stop, done := r.stopChan, r.done
	core.Go(func() {
		defer close(done)
		r.loop(stop)
	}, func(err error) {
		r.statErrors.Add(1)
		r.logger.Error("refresher crashed", "err", err)
	})
}

// Stop halts the background loop and waits for it, safe to call repeatedly
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	done := r.done
	r.mu.Unlock()
	<-done
}

// loop refreshes on a drift-corrected deadline until stop closes
func (r *Refresher) loop(stop <-chan struct{}) {
	interval := r.board.RefreshInterval()
	next := time.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		if _, err := r.Refresh(); err != nil {
			r.logger.Warn("frame push failed", "err", err)
		}

		now := time.Now()
		next = next.Add(interval)
		if now.Sub(next) > interval*2 {
			next = now.Add(interval)
		}
		timer.Reset(max(next.Sub(now), 0))
	}
}

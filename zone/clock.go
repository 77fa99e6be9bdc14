package zone

import (
	"sync"
	"time"

	"github.com/lixenwraith/lightboard/clock"
	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/font"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/surface"
)

// binIcon marks bin collection day
var binIcon = pattern.FromRows(
	".#####.",
	"#######",
	".#...#.",
	".#.#.#.",
	".#.#.#.",
	".#...#.",
	".#####.",
)

// DefaultClockConfig is a fixed zone re-rendering twice a second
func DefaultClockConfig() Config {
	cfg := DefaultConfig()
	cfg.Tick = 500 * time.Millisecond
	cfg.RestDuration = 0
	return cfg.Scroll(core.NoScroll, core.NoScroll)
}

// ClockZone shows the time with a blinking colon, the weekday when there is room, and the bin
// icon on collection day
type ClockZone struct {
	*Zone
	font  font.Font
	clock clock.Clock

	mu      sync.Mutex
	colon   bool
	binDay  time.Weekday
	showBin bool
	width   int // Region size, set through Resize
	height  int
	last    *pattern.Pattern
}

// NewClock creates a clock zone reading time from the scheduler's clock
func NewClock(surf *surface.Surface, sched *scheduler.Scheduler, f font.Font, cfg Config, opts ...Option) *ClockZone {
	c := &ClockZone{font: f}
	c.Zone = New(surf, sched, c, cfg, opts...)
	c.clock = c.Zone.clock
	return c
}

// SetBinDay shows the bin icon whenever the weekday is day
func (c *ClockZone) SetBinDay(day time.Weekday) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binDay = day
	c.showBin = true
	c.last = nil
}

func (c *ClockZone) Validate() error {
	if c.font == nil {
		return font.ErrNoFace
	}
	return nil
}

// Resize records the region size the layout is chosen for
func (c *ClockZone) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

// compose builds the display for now, caller holds mu
// A tall region puts the weekday on its own line, a wide one appends the short day name
func (c *ClockZone) compose(now time.Time) *pattern.Pattern {
	layout := "15 04"
	if c.colon {
		layout = "15:04"
	}
	text := now.Format(layout)
	bin := c.showBin && now.Weekday() == c.binDay
	switch {
	case c.height >= 2*c.font.Height()+1:
		text += "\n" + now.Weekday().String()
	case c.fits(text+" Mon", bin):
		text += " " + now.Format("Mon")
	}
	p := c.font.Render(text).Trim()

	if bin {
		p = pattern.Merge(
			pattern.Letter{X: 0, Y: max(binIcon.Height()-p.Height(), 0) / 2, Pattern: p},
			pattern.Letter{X: p.Width() + 2, Y: max(p.Height()-binIcon.Height(), 0) / 2, Pattern: binIcon},
		)
	}
	c.last = p
	return p
}

// fits reports whether text, plus the bin icon when shown, fits the region width
func (c *ClockZone) fits(text string, bin bool) bool {
	w := c.font.StringWidth(text)
	if bin {
		w += 2 + binIcon.Width()
	}
	return w <= c.width
}

func (c *ClockZone) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.compose(c.clock.Now())
	return p.Width(), p.Height()
}

// Render toggles the colon and draws the current time
func (c *ClockZone) Render(cv *Canvas) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colon = !c.colon
	return cv.DrawPattern(0, 0, c.compose(c.clock.Now()))
}

// Pattern returns the last composed display, composing one if nothing was drawn yet
func (c *ClockZone) Pattern() *pattern.Pattern {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return c.compose(c.clock.Now())
	}
	return c.last
}

// Colon reports whether the last render showed the colon
func (c *ClockZone) Colon() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colon
}

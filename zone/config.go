package zone

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/transition"
)

var (
	ErrNoContent     = errors.New("zone: no content")
	ErrNoPattern     = errors.New("zone: transitions need pattern content")
	ErrInvalidConfig = errors.New("zone: invalid config")
	ErrStarted       = errors.New("zone: already started")
	ErrStopped       = errors.New("zone: stopped")
)

// HAlign positions resting content horizontally within the region
type HAlign int

const (
	Centre HAlign = iota
	Left
	Right
)

// VAlign positions resting content vertically within the region
type VAlign int

const (
	Middle VAlign = iota
	Top
	Bottom
)

var hAlignNames = map[string]HAlign{"centre": Centre, "center": Centre, "left": Left, "right": Right}
var vAlignNames = map[string]VAlign{"middle": Middle, "top": Top, "bottom": Bottom}

// ParseHAlign maps a name to an alignment, "" means Centre
func ParseHAlign(name string) (HAlign, bool) {
	if name == "" {
		return Centre, true
	}
	a, ok := hAlignNames[name]
	return a, ok
}

// ParseVAlign maps a name to an alignment, "" means Middle
func ParseVAlign(name string) (VAlign, bool) {
	if name == "" {
		return Middle, true
	}
	a, ok := vAlignNames[name]
	return a, ok
}

// rest returns the offset that aligns content of length n inside span
func (a HAlign) rest(span, n int) int {
	switch a {
	case Left:
		return 0
	case Right:
		return span - n
	}
	return (span - n) / 2
}

func (a VAlign) rest(span, n int) int {
	switch a {
	case Top:
		return 0
	case Bottom:
		return span - n
	}
	return (span - n) / 2
}

// Phase is where a zone is in its in, rest, out cycle
type Phase int

const (
	ScrollingIn Phase = iota
	Resting
	ScrollingOut
	Done
)

func (p Phase) String() string {
	switch p {
	case ScrollingIn:
		return "scrolling-in"
	case Resting:
		return "resting"
	case ScrollingOut:
		return "scrolling-out"
	case Done:
		return "done"
	}
	return "unknown"
}

// Config is fixed at construction and validated once at Start
type Config struct {
	Name string

	// Region is the requested rectangle, clamped to the surface
	// Zero width and height take the whole surface
	Region core.Region

	From core.Edge // Edge content scrolls in from
	To   core.Edge // Edge content scrolls out through

	HAlign HAlign
	VAlign VAlign

	RestDuration time.Duration
	Tick         time.Duration

	AutoRender   bool // Render on every moving tick
	AutoReset    bool // Restart the cycle once content leaves or renders nothing
	Clear        bool // Clear the region before each render
	Outline      bool
	Invert       bool
	SingleRender bool // Render once at Start and never schedule

	// Optional transitions replacing the edge scroll for one phase
	In  transition.Transition
	Out transition.Transition
}

// DefaultConfig returns a centred, non-scrolling zone over the whole surface
func DefaultConfig() Config {
	return Config{
		HAlign:       Centre,
		VAlign:       Middle,
		RestDuration: 3 * time.Second,
		Tick:         40 * time.Millisecond,
		AutoRender:   true,
		AutoReset:    true,
		Clear:        true,
	}
}

// Scroll returns a copy entering from one edge and leaving through another
func (c Config) Scroll(from, to core.Edge) Config {
	c.From, c.To = from, to
	return c
}

// Validate checks the enums and timings
func (c Config) Validate() error {
	switch {
	case c.Tick <= 0 && !c.SingleRender:
		return fmt.Errorf("%w: %q tick %v must be positive", ErrInvalidConfig, c.Name, c.Tick)
	case c.RestDuration < 0:
		return fmt.Errorf("%w: %q rest duration %v is negative", ErrInvalidConfig, c.Name, c.RestDuration)
	case c.From < core.NoScroll || c.From > core.RightEdge:
		return fmt.Errorf("%w: %q unknown from edge %d", ErrInvalidConfig, c.Name, c.From)
	case c.To < core.NoScroll || c.To > core.RightEdge:
		return fmt.Errorf("%w: %q unknown to edge %d", ErrInvalidConfig, c.Name, c.To)
	case c.HAlign < Centre || c.HAlign > Right:
		return fmt.Errorf("%w: %q unknown horizontal alignment %d", ErrInvalidConfig, c.Name, c.HAlign)
	case c.VAlign < Middle || c.VAlign > Bottom:
		return fmt.Errorf("%w: %q unknown vertical alignment %d", ErrInvalidConfig, c.Name, c.VAlign)
	}
	return nil
}

// Preset is a canned scroll direction for text zones
type Preset int

const (
	Fixed Preset = iota
	ScrollUp
	ScrollDown
	ScrollLeft
)

var presetNames = map[string]Preset{"fixed": Fixed, "scroll-up": ScrollUp, "scroll-down": ScrollDown, "scroll-left": ScrollLeft}

// ParsePreset maps a name to a preset, "" means Fixed
func ParsePreset(name string) (Preset, bool) {
	if name == "" {
		return Fixed, true
	}
	p, ok := presetNames[name]
	return p, ok
}

// Apply sets the preset's edges on cfg
func (p Preset) Apply(cfg Config) Config {
	switch p {
	case ScrollUp:
		return cfg.Scroll(core.BottomEdge, core.TopEdge)
	case ScrollDown:
		return cfg.Scroll(core.TopEdge, core.BottomEdge)
	case ScrollLeft:
		return cfg.Scroll(core.RightEdge, core.LeftEdge)
	}
	return cfg.Scroll(core.NoScroll, core.NoScroll)
}

// Package transition holds swappable per-frame animations that replace a zone's built-in edge scroll
// for one phase of its cycle
package transition

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
)

// Stage is the zone a transition animates on
// Coordinates passed to the draw methods are relative to the zone's region and clipped to it
type Stage interface {
	Pattern() *pattern.Pattern
	Region() core.Region
	RestX() int
	RestY() int
	Tick() time.Duration
	Clear()
	DrawPattern(x, y int, p *pattern.Pattern) bool
	DrawPoint(x, y int, c colorful.Color) bool
}

// Transition renders one pass of an animation a frame at a time
// Reset is called at the start of every pass; Animate draws exactly one frame and reports whether
// anything visible was drawn; progress runs from 0 towards 1 across Steps frames
type Transition interface {
	Reset(st Stage)
	Steps() int
	Animate(st Stage, progress float64) bool
}

// Completer is implemented by transitions whose pass ends on a geometric condition rather than a
// step count
type Completer interface {
	Complete() bool
}

// Done reports whether the pass has finished after step frames
func Done(t Transition, step int) bool {
	if c, ok := t.(Completer); ok {
		return c.Complete()
	}
	return step >= t.Steps()
}

// Progress converts a step index into the 0..1 value passed to Animate
func Progress(step, steps int) float64 {
	if steps <= 0 {
		return 1
	}
	return float64(step) / float64(steps)
}

// mustPattern fails fast on a stage without content, which is a wiring bug
func mustPattern(st Stage) *pattern.Pattern {
	p := st.Pattern()
	if p == nil {
		panic("transition: stage has no pattern")
	}
	return p
}

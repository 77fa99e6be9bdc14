package transition

import (
	"math"
	"time"

	"github.com/lixenwraith/lightboard/core"
)

// Scroll translates the content linearly between two points over a fixed duration
// Positions are fractional so any distance divides evenly into the step count
type Scroll struct {
	edge     core.Edge
	duration time.Duration
	in       bool

	steps          int
	x, y           float64
	deltaX, deltaY float64
	endX, endY     float64
	step           int
}

// ScrollIn brings content in from edge to its rest position
func ScrollIn(edge core.Edge, duration time.Duration) *Scroll {
	return &Scroll{edge: edge, duration: duration, in: true}
}

// ScrollOut carries content from its rest position out through edge
func ScrollOut(edge core.Edge, duration time.Duration) *Scroll {
	return &Scroll{edge: edge, duration: duration}
}

// Edge returns the side the scroll enters from or leaves through
func (s *Scroll) Edge() core.Edge {
	return s.edge
}

func (s *Scroll) Reset(st Stage) {
	p := mustPattern(st)
	r := st.Region()

	s.steps = 1
	if tick := st.Tick(); tick > 0 && s.duration > tick {
		s.steps = int(s.duration / tick)
	}

	restX, restY := float64(st.RestX()), float64(st.RestY())
	offX, offY := restX, restY
	switch s.edge {
	case core.TopEdge:
		offY = float64(-p.Height())
	case core.LeftEdge:
		offX = float64(-p.Width())
	case core.BottomEdge:
		offY = float64(r.Height)
	case core.RightEdge:
		offX = float64(r.Width)
	}

	if s.in {
		s.x, s.y, s.endX, s.endY = offX, offY, restX, restY
	} else {
		s.x, s.y, s.endX, s.endY = restX, restY, offX, offY
	}
	s.deltaX = (s.endX - s.x) / float64(s.steps)
	s.deltaY = (s.endY - s.y) / float64(s.steps)
	s.step = 0
}

func (s *Scroll) Steps() int {
	return s.steps
}

func (s *Scroll) Animate(st Stage, progress float64) bool {
	st.Clear()
	s.step++
	if s.step >= s.steps {
		s.x, s.y = s.endX, s.endY
	} else {
		s.x += s.deltaX
		s.y += s.deltaY
	}
	return st.DrawPattern(int(math.Round(s.x)), int(math.Round(s.y)), st.Pattern())
}

// Position returns the rounded offset of the last frame
func (s *Scroll) Position() (x, y int) {
	return int(math.Round(s.x)), int(math.Round(s.y))
}

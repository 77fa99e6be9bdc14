package zone

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
)

// stage exposes a locked zone to its transitions
type stage struct {
	z *Zone
}

func (s stage) Pattern() *pattern.Pattern {
	if p, ok := s.z.content.(Patterned); ok {
		return p.Pattern()
	}
	return nil
}

func (s stage) Region() core.Region {
	return s.z.region
}

func (s stage) RestX() int {
	return s.z.restX
}

func (s stage) RestY() int {
	return s.z.restY
}

func (s stage) Tick() time.Duration {
	return s.z.cfg.Tick
}

func (s stage) Clear() {
	s.z.surf.ClearRegion(s.z.region)
}

func (s stage) DrawPattern(x, y int, p *pattern.Pattern) bool {
	r := s.z.region
	return s.z.surf.DrawPattern(r.Left+x, r.Top+y, p, false, r)
}

func (s stage) DrawPoint(x, y int, c colorful.Color) bool {
	r := s.z.region
	return s.z.surf.DrawPoint(r.Left+x, r.Top+y, c, r)
}

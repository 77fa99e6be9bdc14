package zone

import (
	"sync"

	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/surface"
)

// PatternZone shows a fixed pattern such as an icon
type PatternZone struct {
	*Zone

	mu      sync.Mutex
	pattern *pattern.Pattern
}

// NewPattern creates a zone showing p
func NewPattern(surf *surface.Surface, sched *scheduler.Scheduler, p *pattern.Pattern, cfg Config, opts ...Option) *PatternZone {
	z := &PatternZone{pattern: p}
	z.Zone = New(surf, sched, z, cfg, opts...)
	return z
}

func (z *PatternZone) Validate() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.pattern == nil {
		return ErrNoContent
	}
	return nil
}

// SetPattern swaps the pattern and restarts the cycle
func (z *PatternZone) SetPattern(p *pattern.Pattern) {
	z.mu.Lock()
	z.pattern = p
	z.mu.Unlock()
	z.ResetScroll()
}

func (z *PatternZone) Size() (int, int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.pattern == nil {
		return 0, 0
	}
	return z.pattern.Width(), z.pattern.Height()
}

func (z *PatternZone) Render(c *Canvas) bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return c.DrawPattern(0, 0, z.pattern)
}

func (z *PatternZone) Pattern() *pattern.Pattern {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.pattern
}

package zone

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/surface"
)

// Canvas is handed to content renderers
// Coordinates are relative to the content's current origin; every write is clipped to the zone region
type Canvas struct {
	surf   *surface.Surface
	region core.Region
	x, y   int // Absolute content origin
}

// Width returns the zone region width
func (c *Canvas) Width() int {
	return c.region.Width
}

// Height returns the zone region height
func (c *Canvas) Height() int {
	return c.region.Height
}

// Kind returns the surface kind, for content that renders differently on mono boards
func (c *Canvas) Kind() surface.Kind {
	return c.surf.Kind()
}

func (c *Canvas) DrawPoint(x, y int, col colorful.Color) bool {
	return c.surf.DrawPoint(c.x+x, c.y+y, col, c.region)
}

func (c *Canvas) ClearPoint(x, y int) bool {
	return c.surf.ClearPoint(c.x+x, c.y+y, c.region)
}

// DrawPattern draws p transparently, off cells leave the surface untouched
func (c *Canvas) DrawPattern(x, y int, p *pattern.Pattern) bool {
	return c.surf.DrawPattern(c.x+x, c.y+y, p, false, c.region)
}

// DrawPatternOpaque draws p clearing the cells under its off cells
func (c *Canvas) DrawPatternOpaque(x, y int, p *pattern.Pattern) bool {
	return c.surf.DrawPattern(c.x+x, c.y+y, p, true, c.region)
}

// DrawRect fills or outlines a rectangle, clipped to the zone
func (c *Canvas) DrawRect(x, y, width, height int, fill bool, col colorful.Color) bool {
	r := c.rect(x, y, width, height)
	if fill {
		return c.surf.FillRegion(r, col)
	}
	return c.surf.OutlineRegion(r)
}

func (c *Canvas) ClearRect(x, y, width, height int) bool {
	return c.surf.ClearRegion(c.rect(x, y, width, height))
}

func (c *Canvas) rect(x, y, width, height int) core.Region {
	return c.surf.SafeRegion(c.x+x, c.y+y, width, height).Intersect(c.region)
}

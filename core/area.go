package core

// Region is a rectangle on a surface
// Zones receive regions only from surface.SafeRegion, so a zone region always lies inside its surface
type Region struct {
	Left, Top     int // Top-left corner
	Width, Height int // Dimensions, never negative after clamping
}

// Clamp clips the requested rectangle against a cols x rows surface
// Negative origins shrink the rectangle, oversized extents are cut at the far edge
func Clamp(left, top, width, height, cols, rows int) Region {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	left, width = clampAxis(left, width, cols)
	top, height = clampAxis(top, height, rows)
	return Region{Left: left, Top: top, Width: width, Height: height}
}

// clampAxis returns the in-bounds start and length of [start, start+length) within [0, limit)
func clampAxis(start, length, limit int) (int, int) {
	if length < 0 {
		length = 0
	}
	end := start + length
	if start < 0 {
		start = 0
	}
	if start > limit {
		start = limit
	}
	if end > limit {
		end = limit
	}
	if end < start {
		end = start
	}
	return start, end - start
}

// Right returns the first column past the region
func (r Region) Right() int {
	return r.Left + r.Width
}

// Bottom returns the first row past the region
func (r Region) Bottom() int {
	return r.Top + r.Height
}

// Empty reports whether the region covers no cells
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the absolute point lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Intersect returns the overlap of two regions, empty when they are disjoint
func (r Region) Intersect(o Region) Region {
	left := max(r.Left, o.Left)
	top := max(r.Top, o.Top)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Region{Left: left, Top: top}
	}
	return Region{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

package surface

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
)

// Surface is the addressable canvas shared by every zone of one board
// All writes go through a single mutex, so zones ticking on different goroutines may draw concurrently
// Writes outside the surface, or outside the clip region passed in, are silent no-ops
type Surface struct {
	mu         sync.Mutex
	rows       int
	cols       int
	kind       Kind
	q          quantizer
	cells      []colorful.Color
	generation uint64
}

// New creates a cleared surface with the specified dimensions
func New(rows, cols int, kind Kind) *Surface {
	rows, cols = max(rows, 0), max(cols, 0)
	return &Surface{
		rows:  rows,
		cols:  cols,
		kind:  kind,
		q:     kind.quantizer(),
		cells: make([]colorful.Color, rows*cols),
	}
}

// Rows returns the surface height
func (s *Surface) Rows() int {
	return s.rows
}

// Cols returns the surface width
func (s *Surface) Cols() int {
	return s.cols
}

// Kind returns the colour capability fixed at construction
func (s *Surface) Kind() Kind {
	return s.kind
}

// Bounds returns the region covering the whole surface
func (s *Surface) Bounds() core.Region {
	return core.Region{Width: s.cols, Height: s.rows}
}

// SafeRegion clips a requested rectangle to the surface, never failing
func (s *Surface) SafeRegion(left, top, width, height int) core.Region {
	return core.Clamp(left, top, width, height, s.cols, s.rows)
}

// Generation increments whenever a visible cell changes
func (s *Surface) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// visible reports whether (x, y) is on the surface and inside clip
func (s *Surface) visible(x, y int, clip core.Region) bool {
	return x >= 0 && x < s.cols && y >= 0 && y < s.rows && clip.Contains(x, y)
}

// set writes a quantized colour and bumps the generation on change, caller holds mu
func (s *Surface) set(x, y int, c colorful.Color) {
	idx := y*s.cols + x
	c = s.q.quantize(c)
	if s.cells[idx] != c {
		s.cells[idx] = c
		s.generation++
	}
}

// ===== POINTS =====

// DrawPoint lights (x, y) with colour c, returns true if the point is visible
func (s *Surface) DrawPoint(x, y int, c colorful.Color, clip core.Region) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible(x, y, clip) {
		return false
	}
	s.set(x, y, c)
	return pattern.Lit(c)
}

// ClearPoint switches (x, y) off, returns true if the point is visible
func (s *Surface) ClearPoint(x, y int, clip core.Region) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible(x, y, clip) {
		return false
	}
	s.set(x, y, pattern.Off)
	return true
}

// ===== PATTERNS =====

// DrawPattern draws p with its top-left at (x, y)
// Off cells are transparent unless clearBackground is set, in which case they clear the surface
// Returns true if at least one lit cell landed on a visible point
func (s *Surface) DrawPattern(x, y int, p *pattern.Pattern, clearBackground bool, clip core.Region) bool {
	if p == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Restrict iteration to the pattern window that can land inside clip
	area := clip.Intersect(s.Bounds()).Intersect(core.Region{Left: x, Top: y, Width: p.Width(), Height: p.Height()})
	drawn := false
	for py := area.Top; py < area.Bottom(); py++ {
		for px := area.Left; px < area.Right(); px++ {
			c := p.At(px-x, py-y)
			if pattern.Lit(c) {
				s.set(px, py, c)
				drawn = true
			} else if clearBackground {
				s.set(px, py, pattern.Off)
			}
		}
	}
	return drawn
}

// ===== REGIONS =====

// FillRegion paints every visible cell of r with colour c
func (s *Surface) FillRegion(r core.Region, c colorful.Color) bool {
	return s.eachCell(r, func(x, y int) {
		s.set(x, y, c)
	})
}

// ClearRegion switches every visible cell of r off
func (s *Surface) ClearRegion(r core.Region) bool {
	return s.eachCell(r, func(x, y int) {
		s.set(x, y, pattern.Off)
	})
}

// InvertRegion flips every visible cell of r according to the surface kind
func (s *Surface) InvertRegion(r core.Region) bool {
	return s.eachCell(r, func(x, y int) {
		s.set(x, y, s.q.invert(s.cells[y*s.cols+x]))
	})
}

// OutlineRegion lights the border cells of r
func (s *Surface) OutlineRegion(r core.Region) bool {
	return s.eachCell(r, func(x, y int) {
		if x == r.Left || x == r.Right()-1 || y == r.Top || y == r.Bottom()-1 {
			s.set(x, y, pattern.On)
		}
	})
}

// ClearSurface switches every cell off
func (s *Surface) ClearSurface() {
	s.ClearRegion(s.Bounds())
}

// eachCell runs fn under the lock for every cell of r that lies on the surface
func (s *Surface) eachCell(r core.Region, fn func(x, y int)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := r.Intersect(s.Bounds())
	if area.Empty() {
		return false
	}
	for y := area.Top; y < area.Bottom(); y++ {
		for x := area.Left; x < area.Right(); x++ {
			fn(x, y)
		}
	}
	return true
}

// ===== READ =====

// At returns the committed colour at (x, y), off outside the surface
func (s *Surface) At(x, y int) colorful.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows {
		return pattern.Off
	}
	return s.cells[y*s.cols+x]
}

// Lit reports whether (x, y) is on
func (s *Surface) Lit(x, y int) bool {
	return pattern.Lit(s.At(x, y))
}

// Frame snapshots the surface for a display backend
func (s *Surface) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]colorful.Color, len(s.cells))
	copy(cells, s.cells)
	return Frame{
		Rows:       s.rows,
		Cols:       s.cols,
		Kind:       s.kind,
		Generation: s.generation,
		Cells:      cells,
	}
}

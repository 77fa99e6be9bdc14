package pattern

import "github.com/lucasb-eyer/go-colorful"

// Letter is a glyph cut out of a larger pattern together with its offset in that pattern
type Letter struct {
	X       int
	Y       int
	Pattern *Pattern
}

// Sub copies the w x h window at (x, y) into a new pattern
// The window must lie inside the pattern
func (p *Pattern) Sub(x, y, w, h int) *Pattern {
	out := New(w, h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out.cells[row*w+col] = p.At(x+col, y+row)
		}
	}
	return out
}

// Tint returns a copy where every lit cell takes colour c scaled by its intensity
func (p *Pattern) Tint(c colorful.Color) *Pattern {
	out := New(p.width, p.height)
	for i, src := range p.cells {
		if v := Intensity(src); v > 0 {
			out.cells[i] = colorful.Color{R: c.R * v, G: c.G * v, B: c.B * v}
		}
	}
	return out
}

// Letters splits the pattern into glyphs separated by fully blank columns
// Each letter spans the full pattern height so glyph baselines stay aligned
func (p *Pattern) Letters() []Letter {
	var letters []Letter
	start := -1
	for x := 0; x <= p.width; x++ {
		blank := x == p.width || p.columnBlank(x)
		switch {
		case !blank && start < 0:
			start = x
		case blank && start >= 0:
			letters = append(letters, Letter{X: start, Y: 0, Pattern: p.Sub(start, 0, x-start, p.height)})
			start = -1
		}
	}
	return letters
}

// columnBlank reports whether column x has no lit cell
func (p *Pattern) columnBlank(x int) bool {
	for y := 0; y < p.height; y++ {
		if Lit(p.cells[y*p.width+x]) {
			return false
		}
	}
	return true
}

// Merge overlays patterns at their offsets onto a canvas sized to fit them all
// Later letters overwrite earlier ones at the same position
func Merge(letters ...Letter) *Pattern {
	w, h := 0, 0
	for _, l := range letters {
		w = max(w, l.X+l.Pattern.width)
		h = max(h, l.Y+l.Pattern.height)
	}
	out := New(w, h)
	for _, l := range letters {
		for y := 0; y < l.Pattern.height; y++ {
			for x := 0; x < l.Pattern.width; x++ {
				if c := l.Pattern.cells[y*l.Pattern.width+x]; Lit(c) {
					out.cells[(l.Y+y)*w+l.X+x] = c
				}
			}
		}
	}
	return out
}

// Trim crops the pattern to the bounding box of its lit cells, an empty pattern trims to 0 x 0
func (p *Pattern) Trim() *Pattern {
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return New(0, 0)
	}
	return p.Sub(minX, minY, maxX-minX+1, maxY-minY+1)
}

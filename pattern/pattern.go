package pattern

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Cell values are RGB with channels in 0..1
// Binary content uses On/Off, grayscale content uses equal channels
var (
	Off = colorful.Color{}
	On  = colorful.Color{R: 1, G: 1, B: 1}
)

// Pattern is a row-major grid of cell colours representing rendered content
// Patterns are owned by whoever built them; consumers read, never write, patterns they did not create
type Pattern struct {
	width  int
	height int
	cells  []colorful.Color
}

// New creates an all-off pattern with the specified dimensions
func New(width, height int) *Pattern {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("pattern: negative dimensions %dx%d", width, height))
	}
	return &Pattern{
		width:  width,
		height: height,
		cells:  make([]colorful.Color, width*height),
	}
}

// FromBools builds a binary pattern from [row][col] presence data
func FromBools(data [][]bool) *Pattern {
	p := New(rowWidth(len(data), func(i int) int { return len(data[i]) }), len(data))
	for y, row := range data {
		for x, on := range row {
			if on {
				p.cells[y*p.width+x] = On
			}
		}
	}
	return p
}

// FromIntensity builds a grayscale pattern from [row][col] intensity data in 0..1
func FromIntensity(data [][]float64) *Pattern {
	p := New(rowWidth(len(data), func(i int) int { return len(data[i]) }), len(data))
	for y, row := range data {
		for x, v := range row {
			v = min(max(v, 0), 1)
			p.cells[y*p.width+x] = colorful.Color{R: v, G: v, B: v}
		}
	}
	return p
}

// FromRows builds a binary pattern from text rows, '#' marks a lit cell
func FromRows(rows ...string) *Pattern {
	p := New(rowWidth(len(rows), func(i int) int { return len(rows[i]) }), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				p.cells[y*p.width+x] = On
			}
		}
	}
	return p
}

// rowWidth returns the widest row; ragged rows are padded with off cells
func rowWidth(n int, length func(int) int) int {
	w := 0
	for i := 0; i < n; i++ {
		w = max(w, length(i))
	}
	return w
}

// Width returns the pattern width in cells
func (p *Pattern) Width() int {
	return p.width
}

// Height returns the pattern height in cells
func (p *Pattern) Height() int {
	return p.height
}

// index asserts bounds: a malformed access is a programming error
func (p *Pattern) index(x, y int) int {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		panic(fmt.Sprintf("pattern: cell (%d,%d) outside %dx%d", x, y, p.width, p.height))
	}
	return y*p.width + x
}

// At returns the cell colour at (x, y)
func (p *Pattern) At(x, y int) colorful.Color {
	return p.cells[p.index(x, y)]
}

// Lit reports whether the cell at (x, y) is on
func (p *Pattern) Lit(x, y int) bool {
	return Lit(p.cells[p.index(x, y)])
}

// Set writes the cell colour at (x, y)
func (p *Pattern) Set(x, y int, c colorful.Color) {
	p.cells[p.index(x, y)] = c
}

// SetLit switches the cell at (x, y) fully on or off
func (p *Pattern) SetLit(x, y int, on bool) {
	if on {
		p.Set(x, y, On)
	} else {
		p.Set(x, y, Off)
	}
}

// Count returns the number of lit cells
func (p *Pattern) Count() int {
	n := 0
	for _, c := range p.cells {
		if Lit(c) {
			n++
		}
	}
	return n
}

// Empty returns true if the pattern has no lit cells
func (p *Pattern) Empty() bool {
	for _, c := range p.cells {
		if Lit(c) {
			return false
		}
	}
	return true
}

// Bounds returns the inclusive bounding box of lit cells, ok is false for an empty pattern
func (p *Pattern) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = p.width, p.height
	maxX, maxY = -1, -1
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if !Lit(p.cells[y*p.width+x]) {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}

// Lit reports whether a cell colour is visible
func Lit(c colorful.Color) bool {
	return Intensity(c) > 0
}

// Intensity returns the brightest channel of a cell colour
func Intensity(c colorful.Color) float64 {
	return max(c.R, c.G, c.B)
}

package surface

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightboard/pattern"
)

// Frame is an immutable snapshot of a surface handed to display backends
// Cells are row-major: Cells[y*Cols + x]
type Frame struct {
	Rows       int
	Cols       int
	Kind       Kind
	Generation uint64
	Cells      []colorful.Color
}

// At returns the cell colour at (x, y), off outside the frame
func (f Frame) At(x, y int) colorful.Color {
	if x < 0 || x >= f.Cols || y < 0 || y >= f.Rows {
		return pattern.Off
	}
	return f.Cells[y*f.Cols+x]
}

// Lit reports whether the cell at (x, y) is on
func (f Frame) Lit(x, y int) bool {
	return pattern.Lit(f.At(x, y))
}

package transition

// DefaultMaxSpacing is the widest gap between exploded cells
const DefaultMaxSpacing = 30

// Explode spreads every cell of the content apart, one more empty cell between neighbours per frame
// The spread stays centred on the content's rest position
type Explode struct {
	maxSpacing int
	implode    bool
	spacing    int
}

// NewExplode spreads from spacing 0 up to maxSpacing
func NewExplode(maxSpacing int) *Explode {
	if maxSpacing <= 0 {
		maxSpacing = DefaultMaxSpacing
	}
	return &Explode{maxSpacing: maxSpacing}
}

// NewImplode gathers from maxSpacing down to 0
func NewImplode(maxSpacing int) *Explode {
	e := NewExplode(maxSpacing)
	e.implode = true
	return e
}

func (e *Explode) Reset(Stage) {
	if e.implode {
		e.spacing = e.maxSpacing
	} else {
		e.spacing = 0
	}
}

// Steps covers every spacing from 0 to maxSpacing inclusive
func (e *Explode) Steps() int {
	return e.maxSpacing + 1
}

// Spacing returns the gap the next frame will use
func (e *Explode) Spacing() int {
	return e.spacing
}

// Origin returns the region-relative top-left of the spread content at the given spacing
func Origin(st Stage, spacing int) (x, y int) {
	p := mustPattern(st)
	w, h := p.Width(), p.Height()
	return st.RestX() + w/2 - span(w, spacing)/2, st.RestY() + h/2 - span(h, spacing)/2
}

// span is the extent of n cells laid out with spacing empty cells between neighbours
func span(n, spacing int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)*(spacing+1) + 1
}

func (e *Explode) Animate(st Stage, progress float64) bool {
	p := mustPattern(st)
	ox, oy := Origin(st, e.spacing)
	stride := e.spacing + 1

	st.Clear()
	drawn := false
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			if !p.Lit(col, row) {
				continue
			}
			if st.DrawPoint(ox+col*stride, oy+row*stride, p.At(col, row)) {
				drawn = true
			}
		}
	}

	if e.implode {
		e.spacing = max(e.spacing-1, 0)
	} else {
		e.spacing = min(e.spacing+1, e.maxSpacing)
	}
	return drawn
}

package transition

// Interlace slides alternate rows of the content in opposite directions
// Even rows move right and odd rows move left by the current shift
type Interlace struct {
	maxShift   int
	shift      int
	shiftDelta int
}

// NewInterlaceOut accelerates rows apart until the shift passes maxShift
func NewInterlaceOut(maxShift int) *Interlace {
	return &Interlace{maxShift: maxShift}
}

func (i *Interlace) Reset(Stage) {
	i.shift = 0
	i.shiftDelta = 4
}

// Steps counts the frames drawn before the shift passes the maximum
func (i *Interlace) Steps() int {
	steps := 0
	for shift, delta := 0, 4; shift <= i.maxShift; steps++ {
		shift += delta
		delta++
	}
	return steps
}

func (i *Interlace) Complete() bool {
	return i.shift > i.maxShift
}

// Shift returns the row offset the next frame will use
func (i *Interlace) Shift() int {
	return i.shift
}

func (i *Interlace) Animate(st Stage, progress float64) bool {
	p := mustPattern(st)
	st.Clear()

	drawn := false
	for row := 0; row < p.Height(); row++ {
		offset := i.shift
		if row%2 == 1 {
			offset = -i.shift
		}
		for col := 0; col < p.Width(); col++ {
			if !p.Lit(col, row) {
				continue
			}
			if st.DrawPoint(st.RestX()+col+offset, st.RestY()+row, p.At(col, row)) {
				drawn = true
			}
		}
	}

	i.shift += i.shiftDelta
	i.shiftDelta++
	return drawn
}

package transition

import "github.com/lixenwraith/lightboard/pattern"

// TypeIn reveals the content one letter per frame, earlier letters staying drawn
type TypeIn struct {
	letters []pattern.Letter
	current int
}

// NewTypeIn creates a type-in transition
func NewTypeIn() *TypeIn {
	return &TypeIn{}
}

func (t *TypeIn) Reset(st Stage) {
	t.letters = mustPattern(st).Letters()
	t.current = 0
}

// Steps equals the number of letters in the content
func (t *TypeIn) Steps() int {
	return len(t.letters)
}

// Revealed returns how many letters are currently drawn
func (t *TypeIn) Revealed() int {
	return t.current
}

func (t *TypeIn) Animate(st Stage, progress float64) bool {
	st.Clear()
	if t.current < len(t.letters) {
		t.current++
	}
	drawn := false
	for _, l := range t.letters[:t.current] {
		if st.DrawPattern(st.RestX()+l.X, st.RestY()+l.Y, l.Pattern) {
			drawn = true
		}
	}
	return drawn
}

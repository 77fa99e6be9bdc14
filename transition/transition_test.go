package transition

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/surface"
)

// testStage is a zone stand-in drawing into a real surface
type testStage struct {
	surf   *surface.Surface
	region core.Region
	p      *pattern.Pattern
	restX  int
	restY  int
	tick   time.Duration
}

func newStage(width, height int, p *pattern.Pattern) *testStage {
	surf := surface.New(height, width, surface.Colour)
	return &testStage{
		surf:   surf,
		region: surf.SafeRegion(0, 0, width, height),
		p:      p,
		restX:  (width - p.Width()) / 2,
		restY:  (height - p.Height()) / 2,
		tick:   40 * time.Millisecond,
	}
}

func (s *testStage) Pattern() *pattern.Pattern { return s.p }
func (s *testStage) Region() core.Region       { return s.region }
func (s *testStage) RestX() int                { return s.restX }
func (s *testStage) RestY() int                { return s.restY }
func (s *testStage) Tick() time.Duration       { return s.tick }
func (s *testStage) Clear()                    { s.surf.ClearRegion(s.region) }

func (s *testStage) DrawPattern(x, y int, p *pattern.Pattern) bool {
	return s.surf.DrawPattern(s.region.Left+x, s.region.Top+y, p, false, s.region)
}

func (s *testStage) DrawPoint(x, y int, c colorful.Color) bool {
	return s.surf.DrawPoint(s.region.Left+x, s.region.Top+y, c, s.region)
}

// litColumns lists the lit x positions on row y
func (s *testStage) litColumns(y int) []int {
	var xs []int
	for x := 0; x < s.region.Width; x++ {
		if s.surf.Lit(x, y) {
			xs = append(xs, x)
		}
	}
	return xs
}

func (s *testStage) litCount() int {
	n := 0
	for y := 0; y < s.region.Height; y++ {
		n += len(s.litColumns(y))
	}
	return n
}

func TestExplodeSpacingIncreases(t *testing.T) {
	st := newStage(60, 9, pattern.FromRows("###"))
	e := NewExplode(5)
	e.Reset(st)

	require.Equal(t, 6, e.Steps())
	for step := 0; step < e.Steps(); step++ {
		assert.Equal(t, step, e.Spacing(), "step %d", step)
		assert.False(t, Done(e, step))
		e.Animate(st, Progress(step, e.Steps()))
	}
	assert.True(t, Done(e, e.Steps()))
	assert.Equal(t, 5, e.Spacing())

	e.Reset(st)
	assert.Equal(t, 0, e.Spacing())
}

func TestExplodeStaysCentred(t *testing.T) {
	st := newStage(60, 9, pattern.FromRows("###"))
	rest := st.RestX() + 1 // Middle cell of the content at rest
	e := NewExplode(10)
	e.Reset(st)

	for step := 0; step < e.Steps(); step++ {
		spacing := e.Spacing()
		e.Animate(st, Progress(step, e.Steps()))

		got := st.litColumns(st.RestY())
		want := []int{rest - spacing - 1, rest, rest + spacing + 1}
		assert.Equal(t, want, got, "spacing %d", spacing)
	}
}

func TestImplodeSpacingDecreases(t *testing.T) {
	st := newStage(60, 9, pattern.FromRows("#.#"))
	e := NewImplode(3)
	e.Reset(st)

	var seen []int
	for step := 0; step < e.Steps(); step++ {
		seen = append(seen, e.Spacing())
		e.Animate(st, Progress(step, e.Steps()))
	}
	assert.Equal(t, []int{3, 2, 1, 0}, seen)
	assert.Equal(t, []int{st.RestX(), st.RestX() + 2}, st.litColumns(st.RestY()))
}

func TestTypeInRevealsCumulatively(t *testing.T) {
	p := pattern.FromRows(
		"#.##.#",
		"#.##.#",
	)
	st := newStage(20, 4, p)
	ti := NewTypeIn()
	ti.Reset(st)

	require.Equal(t, 3, ti.Steps())
	lit := []int{2, 6, 8}
	for k := 0; k < ti.Steps(); k++ {
		assert.True(t, ti.Animate(st, Progress(k, ti.Steps())))
		assert.Equal(t, k+1, ti.Revealed())
		assert.Equal(t, lit[k], st.litCount(), "after step %d", k)
	}
	assert.True(t, Done(ti, ti.Steps()))

	// Letters land exactly where the content rests
	assert.Equal(t, []int{st.RestX(), st.RestX() + 2, st.RestX() + 3, st.RestX() + 5}, st.litColumns(st.RestY()))
}

func TestTypeInEmptyContent(t *testing.T) {
	st := newStage(10, 3, pattern.New(4, 1))
	ti := NewTypeIn()
	ti.Reset(st)

	assert.Equal(t, 0, ti.Steps())
	assert.True(t, Done(ti, 0))
	assert.False(t, ti.Animate(st, 1))
}

func TestInterlaceOutAccelerates(t *testing.T) {
	p := pattern.FromRows("#", "#")
	st := newStage(40, 2, p)
	il := NewInterlaceOut(10)
	il.Reset(st)

	require.Equal(t, 3, il.Steps())
	var shifts []int
	for step := 0; !Done(il, step); step++ {
		shift := il.Shift()
		shifts = append(shifts, shift)
		il.Animate(st, Progress(step, il.Steps()))
		assert.Equal(t, []int{st.RestX() + shift}, st.litColumns(0))
		assert.Equal(t, []int{st.RestX() - shift}, st.litColumns(1))
	}
	assert.Equal(t, []int{0, 4, 9}, shifts)
	assert.Equal(t, 15, il.Shift())

	il.Reset(st)
	assert.False(t, il.Complete())
	assert.Equal(t, 0, il.Shift())
}

func TestScrollInFromLeft(t *testing.T) {
	p := pattern.New(10, 1)
	for x := 0; x < 10; x++ {
		p.SetLit(x, 0, true)
	}
	st := newStage(20, 1, p)
	require.Equal(t, 5, st.RestX())

	s := ScrollIn(core.LeftEdge, 400*time.Millisecond)
	s.Reset(st)
	require.Equal(t, 10, s.Steps())

	prev := -10
	for step := 0; step < s.Steps(); step++ {
		s.Animate(st, Progress(step, s.Steps()))
		x, y := s.Position()
		assert.Greater(t, x, prev)
		assert.Equal(t, 0, y)
		prev = x
	}
	x, _ := s.Position()
	assert.Equal(t, 5, x)
	assert.Len(t, st.litColumns(0), 10)
}

func TestScrollOutEdges(t *testing.T) {
	tests := []struct {
		edge       core.Edge
		wantX      int
		wantY      int
		wantLitEnd bool
	}{
		{core.TopEdge, 5, -3, false},
		{core.LeftEdge, -4, 3, false},
		{core.BottomEdge, 5, 9, false},
		{core.RightEdge, 14, 3, false},
		{core.NoScroll, 5, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			st := newStage(14, 9, pattern.FromRows("####", "####", "####"))
			s := ScrollOut(tt.edge, 200*time.Millisecond)
			s.Reset(st)
			require.Equal(t, 5, s.Steps())

			var drawn bool
			for step := 0; step < s.Steps(); step++ {
				drawn = s.Animate(st, Progress(step, s.Steps()))
			}
			x, y := s.Position()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
			assert.Equal(t, tt.wantLitEnd, drawn)
		})
	}
}

func TestShortDurationIsOneStep(t *testing.T) {
	st := newStage(10, 3, pattern.FromRows("#"))
	s := ScrollIn(core.TopEdge, 0)
	s.Reset(st)
	assert.Equal(t, 1, s.Steps())
}

func TestMissingPatternPanics(t *testing.T) {
	st := newStage(10, 3, pattern.FromRows("#"))
	st.p = nil
	assert.Panics(t, func() { NewTypeIn().Reset(st) })
}

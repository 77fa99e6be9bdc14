package font

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightboard/pattern"
)

func TestNewBasicRequiresFace(t *testing.T) {
	_, err := NewBasic(nil)
	assert.ErrorIs(t, err, ErrNoFace)
}

func TestRenderSize(t *testing.T) {
	f := Default()
	require.Equal(t, 13, f.Height())

	p := f.Render("AB")
	assert.Equal(t, 14, p.Width())
	assert.Equal(t, 13, p.Height())
	assert.Equal(t, 14, f.StringWidth("AB"))
	assert.False(t, p.Empty())

	blank := f.Render("  ")
	assert.Equal(t, 14, blank.Width())
	assert.True(t, blank.Empty())
}

func TestRenderMultiline(t *testing.T) {
	f := Default(WithLineSpacing(2))
	p := f.Render("I\nIII")

	assert.Equal(t, 21, p.Width())
	assert.Equal(t, 13*2+2, p.Height())

	// Short line is centred over the long one
	minX, _, maxX, maxY, ok := p.Sub(0, 0, 21, 13).Bounds()
	require.True(t, ok)
	assert.GreaterOrEqual(t, minX, 7)
	assert.Less(t, maxX, 14)
	assert.Less(t, maxY, 13)
}

func TestMarkupColours(t *testing.T) {
	f := Default()
	p := f.Render("{red}A{#0000ff}B")
	require.Equal(t, 14, p.Width())

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if !p.Lit(x, y) {
				continue
			}
			c := p.At(x, y)
			if x < 7 {
				assert.Equal(t, colorful.Color{R: 1}, c)
			} else {
				assert.Equal(t, colorful.Color{B: 1}, c)
			}
		}
	}
}

func TestMarkupCarriesAcrossLines(t *testing.T) {
	spans := parse("{green}", pattern.On)
	require.Len(t, spans, 1)
	assert.Equal(t, colorful.Color{G: 1}, spans[0].colour)

	p := Default().Render("{green}\nX")
	_, _, _, _, ok := p.Bounds()
	require.True(t, ok)
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if p.Lit(x, y) {
				assert.Equal(t, colorful.Color{G: 1}, p.At(x, y))
			}
		}
	}
}

func TestUnknownMarkupIsLiteral(t *testing.T) {
	assert.Equal(t, "a{nope}b{", Strip("a{nope}b{"))
	assert.Equal(t, "hot\ncold", Strip("{red}hot\n{BLUE}cold"))
	assert.Equal(t, Default().StringWidth("a{nope}"), 7*7)
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"café", "cafe"},
		{"Zürich", "Zurich"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in))
	}
	assert.Equal(t, Default().StringWidth("cafe"), Default().StringWidth("café"))
}

func TestParseColour(t *testing.T) {
	c, ok := ParseColour(" Green ")
	require.True(t, ok)
	assert.Equal(t, colorful.Color{G: 1}, c)

	c, ok = ParseColour("#ff0000")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.R, 1e-9)

	_, ok = ParseColour("mauve")
	assert.False(t, ok)
}

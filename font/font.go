// Package font rasterizes message text into patterns
package font

import (
	"errors"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/lightboard/pattern"
)

// ErrNoFace is returned when a font is built without a glyph face
var ErrNoFace = errors.New("font: no face")

// Font turns text into a pattern
type Font interface {
	Render(text string) *pattern.Pattern
	StringWidth(text string) int
	Height() int
}

// Basic rasterizes through an x/image face, one pattern cell per pixel
// Text may contain colour markup and newlines; lines are centred on the widest one
type Basic struct {
	face      xfont.Face
	colour    colorful.Color
	ascent    int
	height    int
	lineSpace int
}

// Option configures a Basic font
type Option func(*Basic)

// WithColour sets the colour used before any markup
func WithColour(c colorful.Color) Option {
	return func(b *Basic) {
		b.colour = c
	}
}

// WithLineSpacing sets the empty rows between lines
func WithLineSpacing(rows int) Option {
	return func(b *Basic) {
		b.lineSpace = max(rows, 0)
	}
}

// NewBasic wraps face
func NewBasic(face xfont.Face, opts ...Option) (*Basic, error) {
	if face == nil {
		return nil, ErrNoFace
	}
	m := face.Metrics()
	b := &Basic{
		face:      face,
		colour:    pattern.On,
		ascent:    m.Ascent.Ceil(),
		height:    m.Height.Ceil(),
		lineSpace: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Default returns the 7x13 bitmap face
func Default(opts ...Option) *Basic {
	b, _ := NewBasic(basicfont.Face7x13, opts...)
	return b
}

// Height returns the pixel height of one line
func (b *Basic) Height() int {
	return b.height
}

// StringWidth returns the pixel width of the widest line, markup excluded
func (b *Basic) StringWidth(text string) int {
	w := 0
	for _, line := range strings.Split(Fold(text), "\n") {
		w = max(w, b.lineWidth(parse(line, b.colour)))
	}
	return w
}

func (b *Basic) lineWidth(spans []span) int {
	var adv fixed.Int26_6
	for _, s := range spans {
		adv += xfont.MeasureString(b.face, s.text)
	}
	return adv.Ceil()
}

// Render draws text into a new pattern sized to fit it exactly
func (b *Basic) Render(text string) *pattern.Pattern {
	lines := strings.Split(Fold(text), "\n")
	parsed := make([][]span, len(lines))
	width := 0
	colour := b.colour
	for i, line := range lines {
		parsed[i] = parse(line, colour)
		if n := len(parsed[i]); n > 0 {
			colour = parsed[i][n-1].colour
		}
		width = max(width, b.lineWidth(parsed[i]))
	}

	height := len(lines)*b.height + (len(lines)-1)*b.lineSpace
	out := pattern.New(width, height)
	for i, spans := range parsed {
		x := (width - b.lineWidth(spans)) / 2
		y := i * (b.height + b.lineSpace)
		b.drawLine(out, x, y, spans)
	}
	return out
}

// drawLine rasterizes one line of spans with its top-left at (x, y)
func (b *Basic) drawLine(out *pattern.Pattern, x, y int, spans []span) {
	w := b.lineWidth(spans)
	if w == 0 {
		return
	}
	for _, s := range spans {
		adv := xfont.MeasureString(b.face, s.text).Ceil()
		if adv == 0 {
			continue
		}
		mask := image.NewAlpha(image.Rect(0, 0, adv, b.height))
		d := &xfont.Drawer{
			Dst:  mask,
			Src:  image.Opaque,
			Face: b.face,
			Dot:  fixed.P(0, b.ascent),
		}
		d.DrawString(s.text)

		for py := 0; py < b.height; py++ {
			for px := 0; px < adv; px++ {
				a := mask.AlphaAt(px, py).A
				if a == 0 || x+px >= out.Width() {
					continue
				}
				v := float64(a) / 255
				out.Set(x+px, y+py, colorful.Color{R: s.colour.R * v, G: s.colour.G * v, B: s.colour.B * v})
			}
		}
		x += adv
	}
}

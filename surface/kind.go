package surface

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/pattern"
)

// Kind is the colour capability of a board, fixed at surface construction
type Kind int

const (
	Binary Kind = iota
	Grayscale
	Colour
)

var kindNames = map[Kind]string{
	Binary:    "binary",
	Grayscale: "grayscale",
	Colour:    "colour",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a kind name, accepting the "color" and "mono" spellings
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary", "mono":
		return Binary, nil
	case "grayscale", "greyscale", "gray", "grey":
		return Grayscale, nil
	case "colour", "color", "rgb", "":
		return Colour, nil
	}
	return Binary, errors.Errorf("unknown surface kind %q", name)
}

// quantizer maps drawn colours onto what a board kind can show
type quantizer interface {
	quantize(c colorful.Color) colorful.Color
	invert(c colorful.Color) colorful.Color
}

func (k Kind) quantizer() quantizer {
	switch k {
	case Binary:
		return binaryQuantizer{}
	case Grayscale:
		return grayQuantizer{}
	default:
		return colourQuantizer{}
	}
}

// binaryQuantizer thresholds at half intensity
type binaryQuantizer struct{}

func (binaryQuantizer) quantize(c colorful.Color) colorful.Color {
	if pattern.Intensity(c) >= 0.5 {
		return pattern.On
	}
	return pattern.Off
}

func (q binaryQuantizer) invert(c colorful.Color) colorful.Color {
	if pattern.Lit(c) {
		return pattern.Off
	}
	return pattern.On
}

// grayQuantizer keeps the brightest channel as a gray level
type grayQuantizer struct{}

func (grayQuantizer) quantize(c colorful.Color) colorful.Color {
	v := min(pattern.Intensity(c), 1)
	return colorful.Color{R: v, G: v, B: v}
}

func (q grayQuantizer) invert(c colorful.Color) colorful.Color {
	v := 1 - pattern.Intensity(c)
	return colorful.Color{R: v, G: v, B: v}
}

type colourQuantizer struct{}

func (colourQuantizer) quantize(c colorful.Color) colorful.Color {
	return c.Clamped()
}

func (colourQuantizer) invert(c colorful.Color) colorful.Color {
	c = c.Clamped()
	return colorful.Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

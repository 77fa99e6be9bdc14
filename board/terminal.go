package board

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/surface"
)

const (
	ledGlyph    = '●'
	ledFallback = 'o'
	offLevel    = 0.05 // Brightness of an unlit LED
)

// Mode tints the board to simulate single- and dual-colour hardware
type Mode int

const (
	Multi Mode = iota
	Red
	Green
	Yellow
	Blue
	RedGreen
)

var modeNames = map[string]Mode{
	"multi":     Multi,
	"red":       Red,
	"green":     Green,
	"yellow":    Yellow,
	"blue":      Blue,
	"red-green": RedGreen,
}

// ParseMode maps a name to a mode, "" means Multi
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return Multi, nil
	}
	if m, ok := modeNames[name]; ok {
		return m, nil
	}
	return Multi, errors.Errorf("board: unknown mode %q", name)
}

// tint maps a cell colour to what the simulated LED shows
func (m Mode) tint(c colorful.Color) colorful.Color {
	v := pattern.Intensity(c)
	switch m {
	case Red:
		return colorful.Color{R: v}
	case Green:
		return colorful.Color{G: v}
	case Yellow:
		return colorful.Color{R: v, G: v}
	case Blue:
		return colorful.Color{B: v}
	case RedGreen:
		// Red and green dies only, blue folds into both
		return colorful.Color{R: min(c.R+c.B/2, 1), G: min(c.G+c.B/2, 1)}
	}
	return c.Clamped()
}

// Terminal draws the board as a grid of LED glyphs on a tcell screen
type Terminal struct {
	screen   tcell.Screen
	rows     int
	cols     int
	interval time.Duration
	mode     Mode
	glyph    rune
	stride   int // Screen columns per LED

	mu     sync.Mutex
	closed bool
}

// NewTerminal initializes screen and sizes the board to rows x cols LEDs
func NewTerminal(screen tcell.Screen, rows, cols int, interval time.Duration, mode Mode) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "board: init screen")
	}
	screen.HideCursor()
	screen.Clear()

	glyph := ledGlyph
	if runewidth.RuneWidth(glyph) != 1 {
		glyph = ledFallback
	}
	return &Terminal{
		screen:   screen,
		rows:     rows,
		cols:     cols,
		interval: refreshOrDefault(interval),
		mode:     mode,
		glyph:    glyph,
		stride:   runewidth.RuneWidth(glyph) + 1,
	}, nil
}

func (t *Terminal) Rows() int {
	return t.rows
}

func (t *Terminal) Cols() int {
	return t.cols
}

func (t *Terminal) RefreshInterval() time.Duration {
	return t.interval
}

// Screen returns the underlying screen for event polling
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Glyph returns the rune drawn per LED
func (t *Terminal) Glyph() rune {
	return t.glyph
}

// Stride returns the screen columns each LED occupies
func (t *Terminal) Stride() int {
	return t.stride
}

// Style returns the screen style for an LED showing c
func (t *Terminal) Style(c colorful.Color) tcell.Style {
	off := t.mode.tint(pattern.On)
	dim := colorful.Color{R: off.R * offLevel, G: off.G * offLevel, B: off.B * offLevel}
	shown := dim
	if pattern.Lit(c) {
		lit := t.mode.tint(c)
		shown = colorful.Color{R: max(lit.R, dim.R), G: max(lit.G, dim.G), B: max(lit.B, dim.B)}
	}
	r, g, b := shown.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Background(tcell.ColorBlack)
}

func (t *Terminal) Dump(f surface.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("board: terminal closed")
	}

	rows, cols := min(f.Rows, t.rows), min(f.Cols, t.cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t.screen.SetContent(x*t.stride, y, t.glyph, nil, t.Style(f.At(x, y)))
		}
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal, safe to call twice
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

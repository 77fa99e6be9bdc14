// Package config loads YAML scene files describing a board and its zones
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lightboard/board"
	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/font"
	"github.com/lixenwraith/lightboard/surface"
	"github.com/lixenwraith/lightboard/transition"
	"github.com/lixenwraith/lightboard/zone"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid scene")

// Board defaults
const (
	DefaultRows    = 16
	DefaultCols    = 180
	DefaultKind    = "colour"
	DefaultBackend = "terminal"
	DefaultRefresh = 50 * time.Millisecond
)

// Zone kinds
const (
	KindText    = "text"
	KindClock   = "clock"
	KindPattern = "pattern"
)

// Board backends
const (
	BackendTerminal = "terminal"
	BackendText     = "text"
	BackendMemory   = "memory"
)

// Duration reads Go duration strings such as "500ms"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.Wrapf(err, "line %d: duration", node.Line)
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return errors.Wrapf(err, "line %d: duration", node.Line)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Scene is the top level of a scene file
type Scene struct {
	Board Board  `yaml:"board"`
	Zones []Zone `yaml:"zones"`
}

// Board selects the surface geometry and display backend
type Board struct {
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Kind    string   `yaml:"kind"`
	Backend string   `yaml:"backend"`
	Mode    string   `yaml:"mode"`
	Refresh Duration `yaml:"refresh"`
}

// Zone describes one zone and its content
type Zone struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Preset string `yaml:"preset"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	HAlign string `yaml:"halign"`
	VAlign string `yaml:"valign"`

	Rest *Duration `yaml:"rest"`
	Tick *Duration `yaml:"tick"`

	AutoRender   *bool `yaml:"auto_render"`
	AutoReset    *bool `yaml:"auto_reset"`
	Clear        *bool `yaml:"clear"`
	Outline      bool  `yaml:"outline"`
	Invert       bool  `yaml:"invert"`
	SingleRender bool  `yaml:"single_render"`

	In  *Transition `yaml:"in"`
	Out *Transition `yaml:"out"`

	// Text zones
	Messages []string `yaml:"messages"`
	Dir      string   `yaml:"dir"`
	Colour   string   `yaml:"colour"`

	// Pattern zones, one string per row with '#' lit
	Pattern []string `yaml:"pattern"`

	// Clock zones
	BinDay string `yaml:"bin_day"`
}

// Transition replaces the edge scroll for one phase
type Transition struct {
	Kind     string   `yaml:"kind"`
	Edge     string   `yaml:"edge"`
	Duration Duration `yaml:"duration"`
	Max      int      `yaml:"max"`
}

// Load reads and validates a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Parse decodes scene YAML, applies defaults and validates
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is a single clock over the whole board
func Default() *Scene {
	s := &Scene{Zones: []Zone{{Name: "clock", Kind: KindClock}}}
	s.applyDefaults()
	return s
}

func (s *Scene) applyDefaults() {
	b := &s.Board
	if b.Rows <= 0 {
		b.Rows = DefaultRows
	}
	if b.Cols <= 0 {
		b.Cols = DefaultCols
	}
	if b.Kind == "" {
		b.Kind = DefaultKind
	}
	if b.Backend == "" {
		b.Backend = DefaultBackend
	}
	if b.Refresh <= 0 {
		b.Refresh = Duration(DefaultRefresh)
	}
	for i := range s.Zones {
		z := &s.Zones[i]
		if z.Kind == "" {
			z.Kind = KindText
		}
		// Unset extents run to the board edge
		if z.Width == 0 {
			z.Width = b.Cols - z.Left
		}
		if z.Height == 0 {
			z.Height = b.Rows - z.Top
		}
	}
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}

// Validate checks the board and every zone
func (s *Scene) Validate() error {
	if _, err := surface.ParseKind(s.Board.Kind); err != nil {
		return invalid("board: %v", err)
	}
	if _, err := board.ParseMode(s.Board.Mode); err != nil {
		return invalid("board: %v", err)
	}
	switch s.Board.Backend {
	case BackendTerminal, BackendText, BackendMemory:
	default:
		return invalid("board: unknown backend %q", s.Board.Backend)
	}

	seen := make(map[string]bool, len(s.Zones))
	for i, z := range s.Zones {
		if z.Name == "" {
			return invalid("zone %d: missing name", i)
		}
		if seen[z.Name] {
			return invalid("zone %q: duplicate name", z.Name)
		}
		seen[z.Name] = true
		if _, err := z.ZoneConfig(); err != nil {
			return err
		}
	}
	return nil
}

// SurfaceKind returns the parsed board kind
func (b Board) SurfaceKind() surface.Kind {
	k, _ := surface.ParseKind(b.Kind)
	return k
}

// BoardMode returns the parsed terminal tint mode
func (b Board) BoardMode() board.Mode {
	m, _ := board.ParseMode(b.Mode)
	return m
}

// ZoneConfig resolves the zone into a zone.Config
func (z Zone) ZoneConfig() (zone.Config, error) {
	var cfg zone.Config
	switch z.Kind {
	case KindClock:
		cfg = zone.DefaultClockConfig()
	case KindText, KindPattern:
		cfg = zone.DefaultConfig()
	default:
		return cfg, invalid("zone %q: unknown kind %q", z.Name, z.Kind)
	}
	cfg.Name = z.Name
	cfg.Region = core.Region{Left: z.Left, Top: z.Top, Width: z.Width, Height: z.Height}

	preset, ok := zone.ParsePreset(z.Preset)
	if !ok {
		return cfg, invalid("zone %q: unknown preset %q", z.Name, z.Preset)
	}
	if z.Preset != "" {
		cfg = preset.Apply(cfg)
	}
	if z.From != "" {
		if cfg.From, ok = core.ParseEdge(z.From); !ok {
			return cfg, invalid("zone %q: unknown edge %q", z.Name, z.From)
		}
	}
	if z.To != "" {
		if cfg.To, ok = core.ParseEdge(z.To); !ok {
			return cfg, invalid("zone %q: unknown edge %q", z.Name, z.To)
		}
	}
	if cfg.HAlign, ok = zone.ParseHAlign(z.HAlign); !ok {
		return cfg, invalid("zone %q: unknown halign %q", z.Name, z.HAlign)
	}
	if cfg.VAlign, ok = zone.ParseVAlign(z.VAlign); !ok {
		return cfg, invalid("zone %q: unknown valign %q", z.Name, z.VAlign)
	}

	if z.Rest != nil {
		cfg.RestDuration = z.Rest.Std()
	}
	if z.Tick != nil {
		cfg.Tick = z.Tick.Std()
	}
	if z.AutoRender != nil {
		cfg.AutoRender = *z.AutoRender
	}
	if z.AutoReset != nil {
		cfg.AutoReset = *z.AutoReset
	}
	if z.Clear != nil {
		cfg.Clear = *z.Clear
	}
	cfg.Outline = z.Outline
	cfg.Invert = z.Invert
	cfg.SingleRender = z.SingleRender

	var err error
	if cfg.In, err = z.In.build(z.Name, true); err != nil {
		return cfg, err
	}
	if cfg.Out, err = z.Out.build(z.Name, false); err != nil {
		return cfg, err
	}

	if _, ok := z.FontColour(); !ok {
		return cfg, invalid("zone %q: unknown colour %q", z.Name, z.Colour)
	}
	if _, ok := z.Weekday(); !ok {
		return cfg, invalid("zone %q: unknown bin day %q", z.Name, z.BinDay)
	}
	if z.Kind == KindPattern && len(z.Pattern) == 0 {
		return cfg, invalid("zone %q: pattern zone without rows", z.Name)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, invalid("zone %q: %v", z.Name, err)
	}
	return cfg, nil
}

// FontColour returns the text colour, white when unset
func (z Zone) FontColour() (font.Option, bool) {
	if z.Colour == "" {
		return nil, true
	}
	c, ok := font.ParseColour(z.Colour)
	if !ok {
		return nil, false
	}
	return font.WithColour(c), true
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

// Weekday returns the bin day, ok is false for an unknown name
func (z Zone) Weekday() (day time.Weekday, ok bool) {
	if z.BinDay == "" {
		return time.Sunday, true
	}
	day, ok = weekdays[strings.ToLower(strings.TrimSpace(z.BinDay))]
	return day, ok
}

// build creates a fresh transition, nil when unset
func (t *Transition) build(zoneName string, in bool) (transition.Transition, error) {
	if t == nil {
		return nil, nil
	}
	switch strings.ToLower(t.Kind) {
	case "scroll":
		edge, ok := core.ParseEdge(t.Edge)
		if !ok || edge == core.NoScroll {
			return nil, invalid("zone %q: scroll transition needs an edge, got %q", zoneName, t.Edge)
		}
		if in {
			return transition.ScrollIn(edge, t.Duration.Std()), nil
		}
		return transition.ScrollOut(edge, t.Duration.Std()), nil
	case "explode":
		return transition.NewExplode(t.maxOr(transition.DefaultMaxSpacing)), nil
	case "implode":
		return transition.NewImplode(t.maxOr(transition.DefaultMaxSpacing)), nil
	case "typein", "type-in":
		return transition.NewTypeIn(), nil
	case "interlace":
		return transition.NewInterlaceOut(t.maxOr(DefaultInterlaceShift)), nil
	}
	return nil, invalid("zone %q: unknown transition %q", zoneName, t.Kind)
}

// DefaultInterlaceShift is used when an interlace transition sets no max
const DefaultInterlaceShift = 60

func (t *Transition) maxOr(def int) int {
	if t.Max > 0 {
		return t.Max
	}
	return def
}

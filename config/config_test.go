package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightboard/board"
	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/surface"
	"github.com/lixenwraith/lightboard/transition"
	"github.com/lixenwraith/lightboard/zone"
)

const sceneYAML = `
board:
  rows: 32
  cols: 96
  kind: grayscale
  backend: text
  mode: red-green
  refresh: 100ms
zones:
  - name: news
    preset: scroll-left
    top: 0
    height: 16
    rest: 2s
    tick: 20ms
    colour: yellow
    messages: ["hello", "world"]
    out:
      kind: interlace
      max: 40
  - name: clock
    kind: clock
    top: 16
    height: 16
    bin_day: Monday
  - name: icon
    kind: pattern
    pattern: ["#.#", ".#."]
    auto_reset: false
    in:
      kind: explode
`

func TestParseScene(t *testing.T) {
	s, err := Parse([]byte(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, 32, s.Board.Rows)
	assert.Equal(t, 96, s.Board.Cols)
	assert.Equal(t, surface.Grayscale, s.Board.SurfaceKind())
	assert.Equal(t, board.RedGreen, s.Board.BoardMode())
	assert.Equal(t, 100*time.Millisecond, s.Board.Refresh.Std())
	require.Len(t, s.Zones, 3)

	news, err := s.Zones[0].ZoneConfig()
	require.NoError(t, err)
	assert.Equal(t, KindText, s.Zones[0].Kind)
	assert.Equal(t, core.RightEdge, news.From)
	assert.Equal(t, core.LeftEdge, news.To)
	assert.Equal(t, 2*time.Second, news.RestDuration)
	assert.Equal(t, 20*time.Millisecond, news.Tick)
	assert.Equal(t, core.Region{Width: 96, Height: 16}, news.Region)
	assert.IsType(t, &transition.Interlace{}, news.Out)
	assert.Nil(t, news.In)
	opt, ok := s.Zones[0].FontColour()
	assert.True(t, ok)
	assert.NotNil(t, opt)

	clk, err := s.Zones[1].ZoneConfig()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, clk.Tick)
	assert.Equal(t, time.Duration(0), clk.RestDuration)
	day, ok := s.Zones[1].Weekday()
	assert.True(t, ok)
	assert.Equal(t, time.Monday, day)

	icon, err := s.Zones[2].ZoneConfig()
	require.NoError(t, err)
	assert.False(t, icon.AutoReset)
	assert.True(t, icon.AutoRender)
	assert.True(t, icon.Clear)
	assert.IsType(t, &transition.Explode{}, icon.In)
	assert.Equal(t, core.Region{Width: 96, Height: 32}, icon.Region)
}

func TestDefaultsApplied(t *testing.T) {
	s, err := Parse([]byte("zones:\n  - name: a\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRows, s.Board.Rows)
	assert.Equal(t, DefaultCols, s.Board.Cols)
	assert.Equal(t, surface.Colour, s.Board.SurfaceKind())
	assert.Equal(t, BackendTerminal, s.Board.Backend)
	assert.Equal(t, DefaultRefresh, s.Board.Refresh.Std())

	cfg, err := s.Zones[0].ZoneConfig()
	require.NoError(t, err)
	def := zone.DefaultConfig()
	assert.Equal(t, def.Tick, cfg.Tick)
	assert.Equal(t, def.RestDuration, cfg.RestDuration)
	assert.Equal(t, zone.Centre, cfg.HAlign)
	assert.Equal(t, zone.Middle, cfg.VAlign)
	assert.True(t, cfg.AutoRender && cfg.AutoReset && cfg.Clear)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown kind", "board: {kind: sepia}"},
		{"unknown mode", "board: {mode: purple}"},
		{"unknown backend", "board: {backend: hologram}"},
		{"missing name", "zones: [{kind: text}]"},
		{"duplicate name", "zones: [{name: a}, {name: a}]"},
		{"unknown zone kind", "zones: [{name: a, kind: video}]"},
		{"unknown preset", "zones: [{name: a, preset: sideways}]"},
		{"unknown edge", "zones: [{name: a, from: north}]"},
		{"unknown halign", "zones: [{name: a, halign: justify}]"},
		{"unknown colour", "zones: [{name: a, colour: mauve}]"},
		{"unknown bin day", "zones: [{name: a, kind: clock, bin_day: someday}]"},
		{"empty pattern", "zones: [{name: a, kind: pattern}]"},
		{"unknown transition", "zones: [{name: a, in: {kind: fade}}]"},
		{"edgeless scroll", "zones: [{name: a, in: {kind: scroll}}]"},
		{"negative rest", "zones: [{name: a, rest: -1s}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestBadDuration(t *testing.T) {
	_, err := Parse([]byte("board: {refresh: soon}"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Zones, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultScene(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	require.Len(t, s.Zones, 1)
	assert.Equal(t, KindClock, s.Zones[0].Kind)
}

package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightboard/board"
	"github.com/lixenwraith/lightboard/clock"
	"github.com/lixenwraith/lightboard/config"
	"github.com/lixenwraith/lightboard/core"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/status"
	"github.com/lixenwraith/lightboard/surface"
)

const tick = 10 * time.Millisecond

const testScene = `
board:
  rows: 16
  cols: 40
  backend: memory
zones:
  - name: news
    width: 20
    tick: 10ms
    rest: 0s
    messages: ["hi"]
  - name: icon
    kind: pattern
    left: 20
    tick: 10ms
    pattern: ["###", "#.#", "###"]
`

type recordingNotifier struct {
	posts [][]string
}

func (r *recordingNotifier) Notify(msgs []string) {
	r.posts = append(r.posts, msgs)
}

func build(t *testing.T, yaml string, opts ...Option) (*Scene, *board.Memory, *scheduler.Scheduler, *status.Registry) {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)

	reg := status.NewRegistry()
	sched := scheduler.NewManual(clock.NewMock(time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)), scheduler.WithRegistry(reg))
	mem := board.NewMemory(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Refresh.Std())

	opts = append([]Option{WithScheduler(sched), WithRegistry(reg)}, opts...)
	s, err := Build(cfg, mem, nil, opts...)
	require.NoError(t, err)
	return s, mem, sched, reg
}

func litIn(f surface.Frame, r core.Region) int {
	n := 0
	for y := r.Top; y < r.Bottom(); y++ {
		for x := r.Left; x < r.Right(); x++ {
			if f.Lit(x, y) {
				n++
			}
		}
	}
	return n
}

func TestBuildAndRun(t *testing.T) {
	s, mem, sched, reg := build(t, testScene)
	assert.Equal(t, []string{"news", "icon"}, s.Zones())

	icon, ok := s.Zone("icon")
	require.True(t, ok)
	assert.Equal(t, core.Region{Left: 20, Width: 20, Height: 16}, icon.Region())
	_, ok = s.Text("icon")
	assert.False(t, ok)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrStarted)

	sched.Advance(tick)
	assert.True(t, icon.Resting())
	assert.Equal(t, int64(2), reg.Snapshot()["scheduler.ticks"])

	pushed, err := s.Refresh()
	require.NoError(t, err)
	assert.True(t, pushed)
	assert.Equal(t, 1, mem.Frames())

	frame := mem.Last()
	assert.Equal(t, 8, litIn(frame, icon.Region()))
	assert.Positive(t, litIn(frame, core.Region{Width: 20, Height: 16}))

	pushed, err = s.Refresh()
	require.NoError(t, err)
	assert.False(t, pushed)
}

func TestUpdaterOverridesTextZones(t *testing.T) {
	n := &recordingNotifier{}
	s, _, sched, _ := build(t, testScene, WithNotifier(n))
	require.NoError(t, s.Start())
	sched.Advance(tick)

	news, ok := s.Text("news")
	require.True(t, ok)
	assert.Equal(t, "hi", news.Text())

	assert.Equal(t, 1, s.Updater().Post("yo"))
	assert.Equal(t, "yo", news.Text())
	require.Len(t, n.posts, 1)
	assert.Equal(t, []string{"yo"}, n.posts[0])

	g, ok := s.Group("news")
	require.True(t, ok)
	assert.Equal(t, []string{"hi"}, g.List())
}

func TestPauseResume(t *testing.T) {
	s, _, _, reg := build(t, testScene)
	require.NoError(t, s.Start())

	s.Pause()
	assert.True(t, s.Paused())
	assert.True(t, reg.Bools.Get("scene.paused").Load())
	for _, name := range s.Zones() {
		z, _ := s.Zone(name)
		assert.True(t, z.Paused(), name)
	}
	s.Resume()
	assert.False(t, s.Paused())
	for _, name := range s.Zones() {
		z, _ := s.Zone(name)
		assert.False(t, z.Paused(), name)
	}
}

func TestStopBlanksBoard(t *testing.T) {
	s, mem, sched, _ := build(t, testScene)
	require.NoError(t, s.Start())
	sched.Advance(tick)
	_, err := s.Refresh()
	require.NoError(t, err)

	s.Stop()
	s.Stop()

	for _, name := range s.Zones() {
		z, _ := s.Zone(name)
		assert.True(t, z.Stopped(), name)
	}
	frame := mem.Last()
	assert.Zero(t, litIn(frame, core.Region{Width: 40, Height: 16}))
	assert.Equal(t, 2, mem.Frames())
	assert.False(t, mem.Closed())
	assert.Zero(t, sched.Len())
	assert.ErrorIs(t, s.Start(), ErrStopped)
}

func TestMessageDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "news.txt"), []byte("# comment\nfirst\nsecond\n"), 0o644))

	s, _, _, _ := build(t, `
board: {rows: 16, cols: 40, backend: memory}
zones:
  - name: news
    messages: ["inline"]
    dir: `+dir+`
`)
	g, ok := s.Group("news")
	require.True(t, ok)
	assert.Equal(t, []string{"inline", "first", "second"}, g.List())
}

func TestBuildErrors(t *testing.T) {
	mem := board.NewMemory(16, 40, 0)
	_, err := Build(nil, mem, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg := config.Default()
	_, err = Build(cfg, nil, nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg, err = config.Parse([]byte("zones: [{name: a, dir: " + file + "}]"))
	require.NoError(t, err)
	_, err = Build(cfg, mem, nil)
	assert.Error(t, err)
}

func TestOpenBoard(t *testing.T) {
	cfg := config.Default().Board

	cfg.Backend = config.BackendMemory
	b, err := OpenBoard(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &board.Memory{}, b)
	assert.Equal(t, config.DefaultRows, b.Rows())

	var out bytes.Buffer
	cfg.Backend = config.BackendText
	b, err = OpenBoard(cfg, &out)
	require.NoError(t, err)
	assert.IsType(t, &board.Text{}, b)

	cfg.Backend = "hologram"
	_, err = OpenBoard(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

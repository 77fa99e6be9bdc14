package zone

import (
	"sync"

	"github.com/lixenwraith/lightboard/font"
	"github.com/lixenwraith/lightboard/message"
	"github.com/lixenwraith/lightboard/pattern"
	"github.com/lixenwraith/lightboard/scheduler"
	"github.com/lixenwraith/lightboard/surface"
)

// TextZone shows the messages of a group one per cycle
type TextZone struct {
	*Zone
	font  font.Font
	group *message.Group

	mu       sync.Mutex
	text     string
	pattern  *pattern.Pattern
	override *string
}

// NewText creates a text zone; group may be nil for a zone fed only through Override
func NewText(surf *surface.Surface, sched *scheduler.Scheduler, f font.Font, group *message.Group, cfg Config, opts ...Option) *TextZone {
	t := &TextZone{
		font:    f,
		group:   group,
		pattern: pattern.New(0, 0),
	}
	t.Zone = New(surf, sched, t, cfg, opts...)
	t.OnScrollComplete(t.advance)
	return t
}

// Prime loads the first message when the zone starts
func (t *TextZone) Prime() {
	t.advance()
}

func (t *TextZone) Validate() error {
	if t.font == nil {
		return font.ErrNoFace
	}
	return nil
}

// Override shows text from the next tick, ahead of the group's rotation
func (t *TextZone) Override(text string) {
	t.mu.Lock()
	t.setText(text)
	t.mu.Unlock()
	t.ResetScroll()
}

// Queue shows text on the next cycle instead of the group's next message
func (t *TextZone) Queue(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.override = &text
}

// Text returns the message currently displayed
func (t *TextZone) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// advance rotates to the next message
func (t *TextZone) advance() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.override != nil {
		t.setText(*t.override)
		t.override = nil
		return
	}
	if t.group == nil {
		return
	}
	if msg, ok := t.group.Next(); ok {
		t.setText(msg)
	} else {
		t.setText("")
	}
}

// setText renders text cropped to its ink, caller holds mu
func (t *TextZone) setText(text string) {
	t.text = text
	if t.font == nil {
		t.pattern = pattern.New(0, 0)
		return
	}
	t.pattern = t.font.Render(text).Trim()
}

func (t *TextZone) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pattern.Width(), t.pattern.Height()
}

func (t *TextZone) Render(c *Canvas) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return c.DrawPattern(0, 0, t.pattern)
}

func (t *TextZone) Pattern() *pattern.Pattern {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pattern
}

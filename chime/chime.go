// Package chime sounds a short tone when messages are posted to the board
package chime

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(48000)
	volume     = 0.3
)

// Chime plays a rising two-note ding through a shared mixer
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	notes       []float64
	noteLength  time.Duration
	initialized bool
	played      int
}

// New creates a chime, silent until Initialize succeeds
func New() *Chime {
	return &Chime{
		mixer:      &beep.Mixer{},
		notes:      []float64{880, 1320},
		noteLength: 120 * time.Millisecond,
	}
}

// Initialize opens the speaker
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "chime: init speaker")
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences anything still playing
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	c.mixer.Clear()
	c.initialized = false
}

// Notify plays the chime once per post
func (c *Chime) Notify(msgs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || len(msgs) == 0 {
		return
	}
	tone, err := c.tone()
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
	c.played++
}

// Played returns how many chimes were queued
func (c *Chime) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

// Tone builds one chime as a finite streamer
func (c *Chime) Tone() (beep.Streamer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tone()
}

func (c *Chime) tone() (beep.Streamer, error) {
	n := sampleRate.N(c.noteLength)
	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, freq := range c.notes {
		sine, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, errors.Wrapf(err, "chime: tone %.0fHz", freq)
		}
		parts = append(parts, &decay{src: beep.Take(n, sine), total: n})
	}
	return beep.Seq(parts...), nil
}

// decay fades a note linearly to silence over total samples
type decay struct {
	src   beep.Streamer
	total int
	pos   int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := volume * (1 - float64(d.pos)/float64(d.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.src.Err()
}

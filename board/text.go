package board

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/lightboard/surface"
)

// Text writes each frame as rows of '#' and '.' followed by a blank line
type Text struct {
	mu       sync.Mutex
	w        io.Writer
	rows     int
	cols     int
	interval time.Duration
}

// NewText creates a text board writing to w
func NewText(w io.Writer, rows, cols int, interval time.Duration) *Text {
	return &Text{w: w, rows: rows, cols: cols, interval: refreshOrDefault(interval)}
}

func (t *Text) Rows() int {
	return t.rows
}

func (t *Text) Cols() int {
	return t.cols
}

func (t *Text) RefreshInterval() time.Duration {
	return t.interval
}

func (t *Text) Dump(f surface.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bw := bufio.NewWriter(t.w)
	rows, cols := min(f.Rows, t.rows), min(f.Cols, t.cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if f.Lit(x, y) {
				bw.WriteByte('#')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return errors.Wrap(bw.Flush(), "board: write frame")
}

func (t *Text) Close() error {
	return nil
}

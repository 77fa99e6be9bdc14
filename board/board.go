// Package board pushes finished surface frames to a display
package board

import (
	"time"

	"github.com/lixenwraith/lightboard/surface"
)

// Board is a display that shows whole frames
type Board interface {
	Rows() int
	Cols() int
	RefreshInterval() time.Duration
	Dump(f surface.Frame) error
	Close() error
}

// DefaultRefresh is the frame interval used when a board is given none
const DefaultRefresh = 50 * time.Millisecond

func refreshOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultRefresh
	}
	return d
}

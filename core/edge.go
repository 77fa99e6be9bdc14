package core

// Edge names a side of a region that content enters from or leaves through
type Edge int

const (
	NoScroll Edge = iota
	TopEdge
	LeftEdge
	BottomEdge
	RightEdge
)

var edgeNames = map[Edge]string{
	NoScroll:   "none",
	TopEdge:    "top",
	LeftEdge:   "left",
	BottomEdge: "bottom",
	RightEdge:  "right",
}

func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEdge accepts the lowercase edge names, "" and "no_scroll" mean NoScroll
func ParseEdge(name string) (Edge, bool) {
	switch name {
	case "", "no_scroll":
		return NoScroll, true
	}
	for e, n := range edgeNames {
		if n == name {
			return e, true
		}
	}
	return NoScroll, false
}

// Exit returns the unit step that carries content out through the edge
func (e Edge) Exit() (dx, dy int) {
	switch e {
	case TopEdge:
		return 0, -1
	case LeftEdge:
		return -1, 0
	case BottomEdge:
		return 0, 1
	case RightEdge:
		return 1, 0
	}
	return 0, 0
}

// Entry returns the unit step that carries content in from the edge
func (e Edge) Entry() (dx, dy int) {
	dx, dy = e.Exit()
	return -dx, -dy
}

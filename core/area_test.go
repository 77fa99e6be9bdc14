package core

import (
	"errors"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		left, top, w, h int
		want            Region
	}{
		{"inside", 2, 3, 10, 4, Region{2, 3, 10, 4}},
		{"negative origin", -5, -2, 10, 6, Region{0, 0, 5, 4}},
		{"oversized", 10, 0, 500, 500, Region{10, 0, 170, 16}},
		{"past right edge", 200, 4, 10, 4, Region{180, 4, 0, 4}},
		{"negative size", 3, 3, -4, -1, Region{3, 3, 0, 0}},
		{"fully left", -20, 0, 10, 16, Region{0, 0, 0, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.left, tt.top, tt.w, tt.h, 180, 16)
			if got != tt.want {
				t.Errorf("Clamp(%d, %d, %d, %d) = %+v, want %+v", tt.left, tt.top, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

// TestClampAlwaysContained sweeps requests around the surface edges
func TestClampAlwaysContained(t *testing.T) {
	const cols, rows = 12, 7
	for left := -15; left <= 15; left += 3 {
		for top := -9; top <= 9; top += 2 {
			for w := -3; w <= 20; w += 4 {
				for h := -3; h <= 12; h += 3 {
					r := Clamp(left, top, w, h, cols, rows)
					if r.Left < 0 || r.Top < 0 || r.Width < 0 || r.Height < 0 {
						t.Fatalf("Clamp(%d,%d,%d,%d) produced negative field %+v", left, top, w, h, r)
					}
					if r.Right() > cols || r.Bottom() > rows {
						t.Fatalf("Clamp(%d,%d,%d,%d) = %+v escapes %dx%d", left, top, w, h, r, cols, rows)
					}
				}
			}
		}
	}
}

func TestRegionIntersect(t *testing.T) {
	a := Region{0, 0, 10, 10}
	b := Region{5, 5, 10, 10}

	got := a.Intersect(b)
	if got != (Region{5, 5, 5, 5}) {
		t.Errorf("Intersect = %+v, want {5 5 5 5}", got)
	}

	if !a.Intersect(Region{20, 20, 3, 3}).Empty() {
		t.Error("Expected disjoint regions to intersect empty")
	}
	if !a.Contains(9, 9) || a.Contains(10, 9) {
		t.Error("Contains must be inclusive of origin and exclusive of far edge")
	}
}

func TestRunRecoversPanic(t *testing.T) {
	err := Run(func() { panic("boom") })

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Run error = %v, want *PanicError", err)
	}
	if pe.Value != "boom" {
		t.Errorf("PanicError.Value = %v, want boom", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("Expected recovered panic to carry a stack")
	}

	if err := Run(func() {}); err != nil {
		t.Errorf("Run without panic = %v, want nil", err)
	}
}

func TestGoReportsCrash(t *testing.T) {
	done := make(chan error, 1)
	Go(func() { panic("tick failed") }, func(err error) { done <- err })

	if err := <-done; err == nil {
		t.Error("Expected crash callback to receive an error")
	}
}

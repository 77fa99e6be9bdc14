package status

import (
	"sync"
	"testing"
)

func TestRegistryCachedPointers(t *testing.T) {
	reg := NewRegistry()

	ticks := reg.Ints.Get("scheduler.ticks")
	if reg.Ints.Get("scheduler.ticks") != ticks {
		t.Fatal("Get must return the cached pointer for an existing key")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				ticks.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := reg.Snapshot()["scheduler.ticks"]; got != 800 {
		t.Errorf("scheduler.ticks = %d, want 800", got)
	}
}

func TestRegistryKeysSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get("zone.completions")
	reg.Ints.Get("board.frames")
	reg.Bools.Get("scene.paused")

	keys := reg.Ints.Keys()
	if len(keys) != 2 || keys[0] != "board.frames" || keys[1] != "zone.completions" {
		t.Errorf("Keys() = %v, want [board.frames zone.completions]", keys)
	}
	if reg.TotalCount() != 3 {
		t.Errorf("TotalCount() = %d, want 3", reg.TotalCount())
	}
	if !reg.Bools.Has("scene.paused") || reg.Bools.Has("missing") {
		t.Error("Has() mismatch")
	}
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	if got := f.Smooth(10, 0.5); got != 10 {
		t.Errorf("first Smooth = %v, want 10", got)
	}
	if got := f.Smooth(20, 0.5); got != 15 {
		t.Errorf("second Smooth = %v, want 15", got)
	}
	f.Set(2.5)
	if f.Get() != 2.5 {
		t.Errorf("Get() = %v, want 2.5", f.Get())
	}
}

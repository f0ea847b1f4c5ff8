package core

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestByteGridAccessors(t *testing.T) {
	g := NewByteGrid(4, 3)
	if g.Size() != (Size{W: 4, H: 3}) {
		t.Fatalf("size = %+v", g.Size())
	}
	g.Set(3, 2, 9)
	g.Set(4, 0, 1)
	g.Set(-1, 0, 1)
	if got := g.At(3, 2); got != 9 {
		t.Fatalf("At(3,2) = %d, want 9", got)
	}
	if got := g.Cells()[g.Index(3, 2)]; got != 9 {
		t.Fatalf("index lookup = %d, want 9", got)
	}
	if got := g.Row(2)[3]; got != 9 {
		t.Fatalf("row lookup = %d, want 9", got)
	}
	for i, c := range g.Cells() {
		if i != g.Index(3, 2) && c != 0 {
			t.Fatalf("off-grid write leaked into cell %d", i)
		}
	}

	clone := g.Clone()
	g.Clear()
	if clone.At(3, 2) != 9 {
		t.Fatal("clone must not alias the source grid")
	}
	if g.At(3, 2) != 0 {
		t.Fatal("Clear must zero the grid")
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}

func TestForEachRowBandCoversEveryRowOnce(t *testing.T) {
	for _, tc := range []struct{ y0, y1, workers int }{
		{0, 5, 4},
		{0, 600, 8},
		{17, 333, 3},
		{0, 64, 1},
		{10, 10, 4},
	} {
		hits := make([]int32, tc.y1+1)
		bands := RowBands(tc.y0, tc.y1, tc.workers)
		var calls int32
		ForEachRowBand(tc.y0, tc.y1, tc.workers, func(band, from, to int) {
			if band < 0 || band >= bands {
				t.Errorf("band %d outside [0,%d)", band, bands)
			}
			atomic.AddInt32(&calls, 1)
			for y := from; y < to; y++ {
				atomic.AddInt32(&hits[y], 1)
			}
		})
		if int(calls) != bands {
			t.Fatalf("range %+v: %d calls, RowBands said %d", tc, calls, bands)
		}
		for y := tc.y0; y < tc.y1; y++ {
			if hits[y] != 1 {
				t.Fatalf("range %+v: row %d visited %d times", tc, y, hits[y])
			}
		}
	}
}

func TestManualClockAdvance(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Fatalf("advanced %v, want 250ms", got)
	}
}

func TestRNGPointInBounds(t *testing.T) {
	r := NewRNG(7)
	size := Size{W: 13, H: 5}
	for i := 0; i < 200; i++ {
		p := r.PointIn(size)
		if !size.Contains(p.X, p.Y) {
			t.Fatalf("point %+v outside %+v", p, size)
		}
	}
	a, b := NewRNG(3), NewRNG(3)
	for i := 0; i < 10; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("same seed must give the same sequence")
		}
	}
}

package app

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"ripple/internal/core"
	"ripple/internal/render"
)

func batchController(t *testing.T, workers int) (*Controller, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(0, 0))
	c, err := NewController(Options{
		Width: 64, Height: 48, Workers: workers, Clock: clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c, clock
}

func TestRunBatchIsReproducible(t *testing.T) {
	clicks := RandomClicks(core.NewRNG(7), core.Size{W: 64, H: 48}, 3, 30)
	var grids [][]uint8
	for _, workers := range []int{1, 4} {
		c, clock := batchController(t, workers)
		gif := render.NewGIFRecorder(c.Palette(), 2)
		last, err := RunBatch(context.Background(), c, BatchOptions{
			Frames: 30, Step: 10 * time.Millisecond, Clock: clock,
			Clicks: clicks, GIF: gif, GIFEvery: 10,
		})
		if err != nil {
			t.Fatalf("RunBatch: %v", err)
		}
		if last.Tick != 30 || !last.Active {
			t.Fatalf("last frame %+v", last)
		}
		if gif.Frames() != 3 {
			t.Fatalf("gif frames %d", gif.Frames())
		}
		grids = append(grids, slices.Clone(c.Grid().Cells()))
	}
	if !slices.Equal(grids[0], grids[1]) {
		t.Fatal("batch output depends on worker count")
	}
}

func TestRunBatchClickTiming(t *testing.T) {
	c, clock := batchController(t, 1)
	_, err := RunBatch(context.Background(), c, BatchOptions{
		Frames: 5, Step: 100 * time.Millisecond, Clock: clock,
		Clicks: []Click{{Frame: 2, X: 10, Y: 20}},
	})
	if err != nil {
		t.Fatal(err)
	}
	o, ok := c.Origin()
	if !ok || o.X != 10 || o.Y != 20 {
		t.Fatalf("origin %+v", o)
	}
	// Clicked before the third advance, so three steps have elapsed since.
	if got := c.Frame().Elapsed; got < 0.299 || got > 0.301 {
		t.Fatalf("elapsed %v", got)
	}
}

func TestRunBatchHonorsContext(t *testing.T) {
	c, clock := batchController(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBatch(ctx, c, BatchOptions{Frames: 3, Clock: clock}); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := RunBatch(context.Background(), c, BatchOptions{Frames: 0, Clock: clock}); err == nil {
		t.Fatal("expected error for zero frames")
	}
}

func TestRandomClicksSpread(t *testing.T) {
	clicks := RandomClicks(core.NewRNG(1), core.Size{W: 10, H: 10}, 4, 100)
	for i, c := range clicks {
		if c.Frame != i*25 {
			t.Fatalf("click %d at frame %d", i, c.Frame)
		}
		if c.X < 0 || c.X >= 10 || c.Y < 0 || c.Y >= 10 {
			t.Fatalf("click %d off grid: %+v", i, c)
		}
	}
}

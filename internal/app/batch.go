package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ripple/internal/core"
	"ripple/internal/render"
	"ripple/internal/telemetry"
)

// Click is an origin event scheduled at a frame of a batch run.
type Click struct {
	Frame int
	X, Y  int
}

// BatchOptions drives a headless run.
type BatchOptions struct {
	Frames int
	// Step advances Clock before every frame so elapsed time is exact.
	Step   time.Duration
	Clock  *core.ManualClock
	Clicks []Click
	// Pace, when set, holds each frame to the real tick rate.
	Pace     *core.FixedStep
	GIF      *render.GIFRecorder
	GIFEvery int
	Recorder *telemetry.Recorder
}

// RunBatch ticks ctl Frames times and returns the last frame. Clicks fire
// before the tick of their frame. The controller must have been built with
// opts.Clock.
func RunBatch(ctx context.Context, ctl *Controller, opts BatchOptions) (Frame, error) {
	if opts.Frames <= 0 {
		return Frame{}, fmt.Errorf("batch: frames must be positive, got %d", opts.Frames)
	}
	if opts.Clock == nil {
		return Frame{}, fmt.Errorf("batch: a manual clock is required")
	}
	if opts.GIFEvery <= 0 {
		opts.GIFEvery = 1
	}
	clicks := append([]Click(nil), opts.Clicks...)
	sort.SliceStable(clicks, func(i, j int) bool { return clicks[i].Frame < clicks[j].Frame })

	var last Frame
	next := 0
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		for next < len(clicks) && clicks[next].Frame <= i {
			ctl.Click(clicks[next].X, clicks[next].Y)
			next++
		}
		opts.Clock.Advance(opts.Step)
		if opts.Pace != nil {
			opts.Pace.Wait()
		}

		frame, err := ctl.Tick()
		if err != nil {
			return last, err
		}
		last = frame
		if opts.GIF != nil && i%opts.GIFEvery == 0 {
			opts.GIF.AddFrame(ctl.Grid())
		}
		if opts.Recorder != nil {
			if err := opts.Recorder.Record(frame.Sample()); err != nil {
				return last, err
			}
		}
	}
	if opts.Recorder != nil {
		if err := opts.Recorder.Flush(); err != nil {
			return last, err
		}
	}
	return last, nil
}

// RandomClicks spreads n origins evenly over frames, placed by rng.
func RandomClicks(rng *core.RNG, size core.Size, n, frames int) []Click {
	if n <= 0 || frames <= 0 {
		return nil
	}
	clicks := make([]Click, n)
	for i := range clicks {
		p := rng.PointIn(size)
		clicks[i] = Click{Frame: i * frames / n, X: p.X, Y: p.Y}
	}
	return clicks
}

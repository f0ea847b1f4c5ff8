// Command ripple-render runs the wave without a window and writes the
// result as PNG and, optionally, an animated GIF.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"ripple/internal/app"
	"ripple/internal/core"
	"ripple/internal/render"
	"ripple/internal/telemetry"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 300, "number of ticks to run")
	origin := flag.String("origin", "", "origin as x,y (default: grid center)")
	randomOrigins := flag.Int("random-origins", 0, "place this many origins at random instead of -origin")
	seed := flag.Int64("seed", 42, "seed for -random-origins")
	realtime := flag.Bool("realtime", false, "pace ticks at -tps instead of running flat out")
	out := flag.String("out", "ripple.png", "PNG written after the last tick")
	gifPath := flag.String("gif", "", "also record an animated GIF here")
	gifEvery := flag.Int("gif-every", 4, "record every Nth tick into the GIF")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	writeConfig := flag.String("write-config", "", "write the effective config as YAML and continue")
	flag.Parse()

	var handler slog.Handler
	if *logJSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if err := run(cfg, runFlags{
		frames:        *frames,
		origin:        *origin,
		randomOrigins: *randomOrigins,
		seed:          *seed,
		realtime:      *realtime,
		out:           *out,
		gifPath:       *gifPath,
		gifEvery:      *gifEvery,
		writeConfig:   *writeConfig,
	}, logger); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

type runFlags struct {
	frames        int
	origin        string
	randomOrigins int
	seed          int64
	realtime      bool
	out           string
	gifPath       string
	gifEvery      int
	writeConfig   string
}

func run(cfg *app.Config, f runFlags, logger *slog.Logger) error {
	file, err := cfg.Resolve(flag.CommandLine)
	if err != nil {
		return err
	}
	if f.writeConfig != "" {
		if err := file.WriteYAML(f.writeConfig); err != nil {
			return err
		}
	}

	clock := core.NewManualClock(time.Unix(0, 0))
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	opts.Clock = clock
	ctl, err := app.NewController(opts)
	if err != nil {
		return err
	}
	defer ctl.Close()

	size := ctl.Size()
	var clicks []app.Click
	if f.randomOrigins > 0 {
		clicks = app.RandomClicks(core.NewRNG(f.seed), size, f.randomOrigins, f.frames)
	} else {
		p := core.Point{X: size.W / 2, Y: size.H / 2}
		if f.origin != "" {
			if p, err = parsePoint(f.origin); err != nil {
				return err
			}
		}
		clicks = []app.Click{{Frame: 0, X: p.X, Y: p.Y}}
	}

	writer, err := telemetry.NewWriter(file.Telemetry.Dir)
	if err != nil {
		return err
	}
	defer writer.Close()
	if writer != nil {
		if err := file.WriteYAML(writer.Path() + ".yaml"); err != nil {
			return err
		}
	}
	budget := time.Duration(file.Telemetry.BudgetMS * float64(time.Millisecond))

	batch := app.BatchOptions{
		Frames:   f.frames,
		Step:     time.Second / time.Duration(cfg.TPS),
		Clock:    clock,
		Clicks:   clicks,
		Recorder: telemetry.NewRecorder(file.Telemetry.Window, budget, writer, logger),
		GIFEvery: f.gifEvery,
	}
	if f.realtime {
		batch.Pace = core.NewFixedStep(cfg.TPS)
	}
	if f.gifPath != "" {
		batch.GIF = render.NewGIFRecorder(opts.Palette, max(1, 100*f.gifEvery/cfg.TPS))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	last, err := app.RunBatch(ctx, ctl, batch)
	if err != nil {
		return err
	}
	logger.Info("rendered",
		"frames", last.Tick,
		"size", fmt.Sprintf("%dx%d", size.W, size.H),
		"backend", ctl.Backend(),
		"palette", ctl.PaletteName(),
		"elapsed_sim", last.Elapsed,
		"wall", time.Since(start).Round(time.Millisecond),
	)
	if sum, ok := batch.Recorder.Last(); ok {
		logger.Info("timing", "frames", sum)
	}

	if err := render.WritePNG(f.out, last.Image); err != nil {
		return err
	}
	logger.Info("wrote snapshot", "path", f.out)
	if batch.GIF != nil {
		if err := batch.GIF.WriteFile(f.gifPath); err != nil {
			return err
		}
		logger.Info("wrote animation", "path", f.gifPath, "frames", batch.GIF.Frames())
	}
	return nil
}

func parsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Point{}, fmt.Errorf("origin %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Point{}, fmt.Errorf("origin %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Point{}, fmt.Errorf("origin %q: %w", s, err)
	}
	return core.Point{X: x, Y: y}, nil
}

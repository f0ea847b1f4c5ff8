package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ripple/internal/core"
	"ripple/internal/palette"
	"ripple/internal/render"
	"ripple/internal/telemetry"
	"ripple/internal/wave"
)

// Options configures a Controller. Zero fields fall back to DefaultOptions.
type Options struct {
	Width, Height int
	Params        wave.Params
	Palette       palette.ID
	Backend       string
	Workers       int
	// ClearOnOrigin zeroes the grid whenever a new origin is set instead of
	// leaving the previous ripples in place.
	ClearOnOrigin bool
	Clock         core.Clock
	Logger        *slog.Logger
}

// DefaultOptions returns the settings the visualizer starts with.
func DefaultOptions() Options {
	return Options{
		Width:   800,
		Height:  600,
		Params:  wave.DefaultParams(),
		Palette: palette.Default,
		Backend: wave.DefaultBackend,
	}
}

// Frame is the output of one tick.
type Frame struct {
	// Image is valid until the second Tick after the one that produced it.
	Image        *render.RGBImage
	Tick         int
	Active       bool
	Elapsed      float64
	Palette      palette.ID
	Stats        wave.Stats
	GenerateTime time.Duration
	ColorizeTime time.Duration
}

// Sample converts the frame timings for telemetry.
func (f Frame) Sample() telemetry.Sample {
	updated := f.Stats.Updated
	if !f.Active {
		updated = 0
	}
	return telemetry.Sample{Tick: f.Tick, Generate: f.GenerateTime, Colorize: f.ColorizeTime, Updated: updated}
}

// Snapshot is the input state read at the start of a tick.
type Snapshot struct {
	Params  wave.Params
	Palette palette.ID
	Origin  wave.Origin
	Active  bool
}

// Controller owns the grid and runs generate-then-colorize once per Tick.
// Input methods may be called from any goroutine; Tick must only be called
// from a single tick driver.
type Controller struct {
	clock     core.Clock
	logger    *slog.Logger
	backend   wave.Backend
	colorizer render.Colorizer

	mu            sync.Mutex
	params        wave.Params
	pal           palette.ID
	emitter       wave.Emitter
	clearOnOrigin bool
	clearPending  bool

	grid  *core.ByteGrid
	front *render.RGBImage
	back  *render.RGBImage

	frameMu sync.RWMutex
	frame   Frame
}

// NewController builds a controller and its generator backend.
func NewController(opts Options) (*Controller, error) {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Params == (wave.Params{}) {
		opts.Params = def.Params
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, fmt.Errorf("initial parameters: %w", err)
	}
	if !opts.Palette.Valid() {
		return nil, fmt.Errorf("%w: %v", palette.ErrUnknownPalette, opts.Palette)
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	size := core.Size{W: opts.Width, H: opts.Height}
	backend, err := wave.NewBackend(opts.Backend, wave.BackendOptions{Size: size, Workers: opts.Workers})
	if err != nil {
		return nil, err
	}

	c := &Controller{
		clock:         opts.Clock,
		logger:        opts.Logger,
		backend:       backend,
		colorizer:     render.Colorizer{Workers: opts.Workers},
		params:        opts.Params,
		pal:           opts.Palette,
		clearOnOrigin: opts.ClearOnOrigin,
		grid:          core.NewByteGrid(size.W, size.H),
		back:          render.NewRGBImage(size.W, size.H),
	}
	c.front = c.colorizer.Into(nil, c.grid, c.pal)
	c.frame = Frame{Image: c.front, Palette: c.pal}
	c.logger.Debug("controller ready", "size", fmt.Sprintf("%dx%d", size.W, size.H), "backend", backend.Name())
	return c, nil
}

// Size returns the grid dimensions.
func (c *Controller) Size() core.Size { return c.grid.Size() }

// Backend returns the name of the generator backend in use.
func (c *Controller) Backend() string { return c.backend.Name() }

// Click sets a new origin at (x, y), restarting the wave from now.
func (c *Controller) Click(x, y int) {
	now := c.clock.Now()
	c.mu.Lock()
	c.emitter.Trigger(x, y, now)
	if c.clearOnOrigin {
		c.clearPending = true
	}
	c.mu.Unlock()
	c.logger.Debug("origin set", "x", x, "y", y)
}

// CommitParameters parses and applies the three parameter fields together.
// On any error the previous parameters stay in effect.
func (c *Controller) CommitParameters(beta, omega, lambda string) error {
	p, err := wave.ParseParams(beta, omega, lambda)
	if err != nil {
		c.logger.Warn("parameters rejected", "beta", beta, "omega", omega, "lambda", lambda, "err", err)
		return err
	}
	c.mu.Lock()
	c.params = p
	c.mu.Unlock()
	c.logger.Info("parameters committed", "beta", p.Beta, "omega", p.Omega, "lambda", p.Lambda)
	return nil
}

// ApplyOverrides applies key/value parameter overrides atomically.
func (c *Controller) ApplyOverrides(kv map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := wave.ParamsFromMap(kv, c.params)
	if err != nil {
		c.logger.Warn("overrides rejected", "err", err)
		return err
	}
	c.params = p
	return nil
}

// SelectPalette switches palettes by name. Unknown names keep the current one.
func (c *Controller) SelectPalette(name string) error {
	id, err := palette.Lookup(name)
	if err != nil {
		c.logger.Warn("palette rejected", "name", name)
		return err
	}
	c.mu.Lock()
	c.pal = id
	c.mu.Unlock()
	return nil
}

// CyclePalette moves step entries through the selector order and returns
// the new palette.
func (c *Controller) CyclePalette(step int) palette.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pal = palette.Next(c.pal, step)
	return c.pal
}

// Clear zeroes the grid on the next tick. The origin is kept.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.clearPending = true
	c.mu.Unlock()
}

// Reset returns to the Idle state and zeroes the grid on the next tick.
// Parameters and palette are kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.emitter.Reset()
	c.clearPending = true
	c.mu.Unlock()
}

// Params returns the committed parameters.
func (c *Controller) Params() wave.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Palette returns the selected palette id.
func (c *Controller) Palette() palette.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pal
}

// PaletteName returns the selected palette name.
func (c *Controller) PaletteName() string { return c.Palette().String() }

// Origin returns the current origin and whether one is set.
func (c *Controller) Origin() (wave.Origin, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emitter.Origin()
}

// Snapshot copies the input state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	origin, active := c.emitter.Origin()
	return Snapshot{Params: c.params, Palette: c.pal, Origin: origin, Active: active}
}

// Parameters describes the committed values for display.
func (c *Controller) Parameters() core.ParameterSnapshot {
	s := c.Snapshot()
	state := wave.Idle
	if s.Active {
		state = wave.Active
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Wave",
			Params: []core.Parameter{
				{Key: wave.KeyBeta, Label: "β", Type: core.ParamTypeFloat, Value: wave.Format(s.Params.Beta), Description: "damping per second"},
				{Key: wave.KeyOmega, Label: "ω", Type: core.ParamTypeFloat, Value: wave.Format(s.Params.Omega), Description: "angular frequency"},
				{Key: wave.KeyLambda, Label: "λ", Type: core.ParamTypeFloat, Value: wave.Format(s.Params.Lambda), Description: "front speed in cells per second"},
			},
		},
		{
			Name: "View",
			Params: []core.Parameter{
				{Key: "palette", Label: "Palette", Type: core.ParamTypeChoice, Value: s.Palette.String()},
				{Key: "state", Label: "State", Type: core.ParamTypeChoice, Value: state.String()},
			},
		},
	}}
}

// Tick runs one generate-then-colorize pass and publishes the new frame.
// An Idle controller skips generation but still colorizes the grid.
func (c *Controller) Tick() (Frame, error) {
	now := c.clock.Now()
	c.mu.Lock()
	p := c.params
	pal := c.pal
	origin, _ := c.emitter.Origin()
	elapsed, active := c.emitter.Elapsed(now)
	clearGrid := c.clearPending
	c.clearPending = false
	c.mu.Unlock()

	if clearGrid {
		c.grid.Clear()
	}

	c.frameMu.RLock()
	next := Frame{Tick: c.frame.Tick + 1, Active: active, Elapsed: elapsed, Palette: pal}
	c.frameMu.RUnlock()

	if active {
		start := time.Now()
		stats, err := c.backend.Generate(c.grid, origin.X, origin.Y, elapsed, p)
		next.GenerateTime = time.Since(start)
		if err != nil {
			return Frame{}, fmt.Errorf("tick %d: %w", next.Tick, err)
		}
		next.Stats = stats
	}

	start := time.Now()
	c.back = c.colorizer.Into(c.back, c.grid, pal)
	next.ColorizeTime = time.Since(start)
	next.Image = c.back

	c.frameMu.Lock()
	c.front, c.back = c.back, c.front
	c.frame = next
	c.frameMu.Unlock()
	return next, nil
}

// Frame returns the most recently published frame.
func (c *Controller) Frame() Frame {
	c.frameMu.RLock()
	defer c.frameMu.RUnlock()
	return c.frame
}

// Grid returns the live intensity grid. It must only be read between ticks
// on the tick driver's goroutine.
func (c *Controller) Grid() *core.ByteGrid { return c.grid }

// Close releases the generator backend.
func (c *Controller) Close() error {
	return c.backend.Close()
}

package app

import (
	"flag"
	"fmt"
	"log/slog"

	"ripple/internal/config"
	"ripple/internal/palette"
	"ripple/internal/wave"
)

// Config represents the command-line parameters shared by the front ends.
// Flags left unset keep the values from the YAML config.
type Config struct {
	ConfigPath    string
	Width         int
	Height        int
	Scale         int
	TPS           int
	Palette       string
	Backend       string
	Workers       int
	ClearOnOrigin bool
	Beta          float64
	Omega         float64
	Lambda        float64
	Verbose       bool
}

// NewConfig returns a Config populated from the embedded defaults.
func NewConfig() *Config {
	c := &Config{}
	c.from(config.Default())
	return c
}

func (c *Config) from(f *config.Config) {
	c.Width = f.Screen.Width
	c.Height = f.Screen.Height
	c.Scale = f.Screen.Scale
	c.TPS = f.Screen.TPS
	c.Palette = f.Render.Palette
	c.Backend = f.Generator.Backend
	c.Workers = f.Generator.Workers
	c.ClearOnOrigin = f.Generator.ClearOnOrigin
	c.Beta = f.Wave.Beta
	c.Omega = f.Wave.Omega
	c.Lambda = f.Wave.Lambda
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config file layered over the defaults")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Palette, "palette", c.Palette, fmt.Sprintf("initial palette %v", palette.Names()))
	fs.StringVar(&c.Backend, "backend", c.Backend, fmt.Sprintf("generator backend %v", wave.Backends()))
	fs.IntVar(&c.Workers, "workers", c.Workers, "generator goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&c.ClearOnOrigin, "clear-on-origin", c.ClearOnOrigin, "zero the grid on every click")
	fs.Float64Var(&c.Beta, "beta", c.Beta, "damping per second")
	fs.Float64Var(&c.Omega, "omega", c.Omega, "angular frequency")
	fs.Float64Var(&c.Lambda, "lambda", c.Lambda, "front speed in cells per second")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}

// Resolve loads the YAML file named by -config and applies every flag that
// was set explicitly on fs on top of it. fs must already be parsed.
func (c *Config) Resolve(fs *flag.FlagSet) (*config.Config, error) {
	file, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := func(name string, apply func()) {
		if set[name] {
			apply()
		}
	}
	override("width", func() { file.Screen.Width = c.Width })
	override("height", func() { file.Screen.Height = c.Height })
	override("scale", func() { file.Screen.Scale = c.Scale })
	override("tps", func() { file.Screen.TPS = c.TPS })
	override("palette", func() { file.Render.Palette = c.Palette })
	override("backend", func() { file.Generator.Backend = c.Backend })
	override("workers", func() { file.Generator.Workers = c.Workers })
	override("clear-on-origin", func() { file.Generator.ClearOnOrigin = c.ClearOnOrigin })
	override("beta", func() { file.Wave.Beta = c.Beta })
	override("omega", func() { file.Wave.Omega = c.Omega })
	override("lambda", func() { file.Wave.Lambda = c.Lambda })

	if err := file.Validate(); err != nil {
		return nil, err
	}
	c.from(file)
	return file, nil
}

// Options converts a resolved config into controller options.
func (c *Config) Options(logger *slog.Logger) (Options, error) {
	id, err := palette.Lookup(c.Palette)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:         c.Width,
		Height:        c.Height,
		Params:        wave.Params{Beta: c.Beta, Omega: c.Omega, Lambda: c.Lambda},
		Palette:       id,
		Backend:       c.Backend,
		Workers:       c.Workers,
		ClearOnOrigin: c.ClearOnOrigin,
		Logger:        logger,
	}, nil
}

// LogLevel maps -v to a slog level.
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

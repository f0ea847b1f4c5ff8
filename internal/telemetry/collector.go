// Package telemetry summarizes per-tick frame timings over fixed windows.
package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample holds timing data for a single tick.
type Sample struct {
	Tick     int
	Generate time.Duration
	Colorize time.Duration
	// Updated is the number of cells written, or -1 when the backend does
	// not count them.
	Updated int
}

// Total is the time the tick spent producing its frame.
func (s Sample) Total() time.Duration { return s.Generate + s.Colorize }

// Summary aggregates one window of samples. Durations are milliseconds.
type Summary struct {
	WindowEnd    int     `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	MeanMS       float64 `csv:"mean_ms"`
	StdMS        float64 `csv:"std_ms"`
	P50MS        float64 `csv:"p50_ms"`
	P95MS        float64 `csv:"p95_ms"`
	MaxMS        float64 `csv:"max_ms"`
	GenerateMS   float64 `csv:"generate_mean_ms"`
	ColorizeMS   float64 `csv:"colorize_mean_ms"`
	Overruns     int     `csv:"overruns"`
	UpdatedCells float64 `csv:"updated_mean"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEnd),
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_ms", s.MeanMS),
		slog.Float64("std_ms", s.StdMS),
		slog.Float64("p50_ms", s.P50MS),
		slog.Float64("p95_ms", s.P95MS),
		slog.Float64("max_ms", s.MaxMS),
		slog.Float64("generate_mean_ms", s.GenerateMS),
		slog.Float64("colorize_mean_ms", s.ColorizeMS),
		slog.Int("overruns", s.Overruns),
		slog.Float64("updated_mean", s.UpdatedCells),
	)
}

// Collector accumulates samples and emits a Summary every window ticks.
type Collector struct {
	window int
	budget time.Duration
	buf    []Sample
}

// NewCollector creates a collector. window < 1 defaults to 100 ticks;
// budget <= 0 disables overrun counting.
func NewCollector(window int, budget time.Duration) *Collector {
	if window < 1 {
		window = 100
	}
	return &Collector{window: window, budget: budget, buf: make([]Sample, 0, window)}
}

// Window returns the number of ticks per summary.
func (c *Collector) Window() int { return c.window }

// Add records a sample. When it completes a window the summary is returned
// and the window restarts.
func (c *Collector) Add(s Sample) (Summary, bool) {
	c.buf = append(c.buf, s)
	if len(c.buf) < c.window {
		return Summary{}, false
	}
	sum := Summarize(c.buf, c.budget)
	c.buf = c.buf[:0]
	return sum, true
}

// Flush summarizes a partial window, if any samples are pending.
func (c *Collector) Flush() (Summary, bool) {
	if len(c.buf) == 0 {
		return Summary{}, false
	}
	sum := Summarize(c.buf, c.budget)
	c.buf = c.buf[:0]
	return sum, true
}

// Summarize computes window statistics over samples.
func Summarize(samples []Sample, budget time.Duration) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	total := make([]float64, n)
	gen := make([]float64, n)
	col := make([]float64, n)
	var updated []float64
	overruns := 0
	for i, s := range samples {
		total[i] = ms(s.Total())
		gen[i] = ms(s.Generate)
		col[i] = ms(s.Colorize)
		if s.Updated >= 0 {
			updated = append(updated, float64(s.Updated))
		}
		if budget > 0 && s.Total() > budget {
			overruns++
		}
	}

	mean, std := stat.MeanStdDev(total, nil)
	if n == 1 {
		std = 0
	}
	sorted := slices.Clone(total)
	slices.Sort(sorted)

	sum := Summary{
		WindowEnd:  samples[n-1].Tick,
		Ticks:      n,
		MeanMS:     mean,
		StdMS:      std,
		P50MS:      stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95MS:      stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MaxMS:      floats.Max(total),
		GenerateMS: stat.Mean(gen, nil),
		ColorizeMS: stat.Mean(col, nil),
		Overruns:   overruns,
	}
	if len(updated) > 0 {
		sum.UpdatedCells = stat.Mean(updated, nil)
	} else {
		sum.UpdatedCells = -1
	}
	return sum
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

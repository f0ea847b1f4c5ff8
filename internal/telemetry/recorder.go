package telemetry

import (
	"log/slog"
	"time"
)

// Recorder feeds samples to a Collector and, on every completed window,
// logs the summary and appends it to the CSV writer.
type Recorder struct {
	collector *Collector
	writer    *Writer
	logger    *slog.Logger
	last      Summary
	windows   int
}

// NewRecorder wires a collector to an optional writer. A nil logger uses
// slog.Default().
func NewRecorder(window int, budget time.Duration, w *Writer, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{collector: NewCollector(window, budget), writer: w, logger: logger}
}

// Record adds a sample, emitting a summary if it closes a window.
func (r *Recorder) Record(s Sample) error {
	sum, ok := r.collector.Add(s)
	if !ok {
		return nil
	}
	return r.emit(sum)
}

// Flush emits the pending partial window.
func (r *Recorder) Flush() error {
	sum, ok := r.collector.Flush()
	if !ok {
		return nil
	}
	return r.emit(sum)
}

// Last returns the most recent summary and whether one exists.
func (r *Recorder) Last() (Summary, bool) { return r.last, r.windows > 0 }

func (r *Recorder) emit(sum Summary) error {
	r.last = sum
	r.windows++
	if sum.Overruns > 0 {
		r.logger.Warn("frame budget exceeded", "frames", sum)
	} else {
		r.logger.Debug("frames", "frames", sum)
	}
	return r.writer.Write(sum)
}

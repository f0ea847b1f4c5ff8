package telemetry

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func msSamples(vals ...int) []Sample {
	out := make([]Sample, len(vals))
	for i, v := range vals {
		out[i] = Sample{Tick: i + 1, Generate: time.Duration(v) * time.Millisecond, Updated: 10 * v}
	}
	return out
}

func TestSummarizeStatistics(t *testing.T) {
	samples := msSamples(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	sum := Summarize(samples, 8*time.Millisecond)

	if sum.Ticks != 10 || sum.WindowEnd != 10 {
		t.Fatalf("ticks=%d end=%d", sum.Ticks, sum.WindowEnd)
	}
	if math.Abs(sum.MeanMS-5.5) > 1e-9 {
		t.Fatalf("mean = %v", sum.MeanMS)
	}
	if sum.P50MS != 5 || sum.P95MS != 10 || sum.MaxMS != 10 {
		t.Fatalf("p50=%v p95=%v max=%v", sum.P50MS, sum.P95MS, sum.MaxMS)
	}
	if sum.Overruns != 2 {
		t.Fatalf("overruns = %d, want 2", sum.Overruns)
	}
	if math.Abs(sum.UpdatedCells-55) > 1e-9 {
		t.Fatalf("updated mean = %v", sum.UpdatedCells)
	}
	if sum.StdMS <= 0 {
		t.Fatalf("std = %v", sum.StdMS)
	}
}

func TestSummarizeSingleSampleAndUncounted(t *testing.T) {
	sum := Summarize([]Sample{{Tick: 3, Colorize: time.Millisecond, Updated: -1}}, 0)
	if sum.StdMS != 0 {
		t.Fatalf("std of one sample = %v", sum.StdMS)
	}
	if sum.UpdatedCells != -1 {
		t.Fatalf("uncounted updates should report -1, got %v", sum.UpdatedCells)
	}
	if sum.Overruns != 0 {
		t.Fatal("zero budget must not count overruns")
	}
	if (Summarize(nil, 0) != Summary{}) {
		t.Fatal("empty summary should be zero")
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(3, 0)
	var got []Summary
	for _, s := range msSamples(1, 1, 1, 2, 2, 2, 9) {
		if sum, ok := c.Add(s); ok {
			got = append(got, sum)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d windows", len(got))
	}
	if got[0].WindowEnd != 3 || got[1].WindowEnd != 6 || got[1].MeanMS != 2 {
		t.Fatalf("unexpected windows %+v", got)
	}
	rest, ok := c.Flush()
	if !ok || rest.Ticks != 1 || rest.MaxMS != 9 {
		t.Fatalf("flush = %+v, %v", rest, ok)
	}
	if _, ok := c.Flush(); ok {
		t.Fatal("second flush should be empty")
	}
}

func TestWriterHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	rec := NewRecorder(2, 0, w, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, s := range msSamples(1, 2, 3, 4, 5) {
		if err := rec.Record(s); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if last, ok := rec.Last(); !ok || last.WindowEnd != 5 {
		t.Fatalf("last = %+v", last)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("want header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,ticks,mean_ms") {
		t.Fatalf("header = %q", lines[0])
	}
	if strings.Contains(strings.Join(lines[1:], "\n"), "window_end") {
		t.Fatal("header repeated")
	}
}

func TestNilWriterDiscards(t *testing.T) {
	w, err := NewWriter("")
	if err != nil || w != nil {
		t.Fatalf("NewWriter(\"\") = %v, %v", w, err)
	}
	if err := w.Write(Summary{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

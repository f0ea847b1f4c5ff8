package core

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelRowThreshold is the minimum row count worth fanning out.
// Below this, one goroutine is faster than the scheduling overhead.
const parallelRowThreshold = 32

// ForEachRowBand splits rows [y0, y1) into contiguous bands and runs fn on
// each band, concurrently when the range is large enough. Bands never
// overlap, so fn may write its rows without locking. fn receives the band
// index so callers can keep per-band accumulators sized by RowBands.
//
// workers <= 0 uses GOMAXPROCS.
func ForEachRowBand(y0, y1, workers int, fn func(band, from, to int)) {
	bands, per := bandLayout(y1-y0, workers)
	switch bands {
	case 0:
		return
	case 1:
		fn(0, y0, y1)
		return
	}

	var g errgroup.Group
	g.SetLimit(resolveWorkers(workers))
	for b := 0; b < bands; b++ {
		from := y0 + b*per
		to := min(from+per, y1)
		g.Go(func() error {
			fn(b, from, to)
			return nil
		})
	}
	_ = g.Wait()
}

// RowBands reports how many bands ForEachRowBand will use for the range.
func RowBands(y0, y1, workers int) int {
	bands, _ := bandLayout(y1-y0, workers)
	return bands
}

func resolveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

func bandLayout(rows, workers int) (bands, per int) {
	if rows <= 0 {
		return 0, 0
	}
	workers = resolveWorkers(workers)
	if workers == 1 || rows < parallelRowThreshold {
		return 1, rows
	}
	// A few bands per worker keeps the tail short when rows cost differently.
	bands = min(workers*4, rows)
	per = (rows + bands - 1) / bands
	return (rows + per - 1) / per, per
}

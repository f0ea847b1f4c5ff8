package wave

import (
	"math"

	"ripple/internal/core"
)

// Stats describes the sparse update one generation pass applied.
type Stats struct {
	// Radius is the wavefront radius lambda*elapsed used for the pass.
	Radius float64
	// Updated counts the cells written, or -1 when the backend does not count.
	Updated int
	// Rows is the number of grid rows the pass touched.
	Rows int
}

// Intensity evaluates the damped travelling cosine at distance d after
// elapsed seconds, before any clamping.
func Intensity(d, elapsed float64, p Params) float64 {
	return 128 + 127*math.Exp(-p.Beta*elapsed)*math.Cos(p.Omega*elapsed+d)
}

// Quantize stores v the way an 8-bit unsigned cell does: truncated toward
// zero and clamped to [0, 255]. NaN stores 0.
func Quantize(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Generator evaluates the wave field on the CPU.
type Generator struct {
	// Workers bounds the goroutines used per pass; <= 0 uses GOMAXPROCS.
	Workers int
}

// Generate writes every cell strictly inside the wavefront radius and leaves
// all other cells untouched. Origins off the grid are allowed. Parameters
// are not validated: lambda <= 0 writes nothing and beta <= 0 lets the
// amplitude grow until clamping.
func (g Generator) Generate(grid *core.ByteGrid, originX, originY int, elapsed float64, p Params) Stats {
	radius := p.Lambda * elapsed
	stats := Stats{Radius: radius}
	if grid == nil || !(radius > 0) {
		return stats
	}

	ox, oy := float64(originX), float64(originY)
	y0 := int(math.Max(0, math.Floor(oy-radius)))
	y1f := math.Min(float64(grid.H), math.Ceil(oy+radius)+1)
	if y1f <= float64(y0) {
		return stats
	}
	y1 := int(y1f)

	amp := 127 * math.Exp(-p.Beta*elapsed)
	phase := p.Omega * elapsed
	r2 := radius * radius
	maxX := float64(grid.W - 1)

	counts := make([]int, core.RowBands(y0, y1, g.Workers))
	touched := make([]int, len(counts))
	core.ForEachRowBand(y0, y1, g.Workers, func(band, from, to int) {
		n, rows := 0, 0
		for y := from; y < to; y++ {
			dy := float64(y - originY)
			rem := r2 - dy*dy
			if !(rem > 0) {
				continue
			}
			half := math.Sqrt(rem)
			x0 := int(math.Max(0, math.Floor(ox-half)))
			x1f := math.Min(maxX, math.Ceil(ox+half))
			if x1f < float64(x0) {
				continue
			}
			x1 := int(x1f)
			row := grid.Row(y)
			hit := false
			for x := x0; x <= x1; x++ {
				dx := float64(x - originX)
				d := math.Sqrt(dx*dx + dy*dy)
				if d < radius {
					row[x] = Quantize(128 + amp*math.Cos(phase+d))
					n++
					hit = true
				}
			}
			if hit {
				rows++
			}
		}
		counts[band] = n
		touched[band] = rows
	})
	for i := range counts {
		stats.Updated += counts[i]
		stats.Rows += touched[i]
	}
	return stats
}

// Generate runs a pass with the default worker count.
func Generate(grid *core.ByteGrid, originX, originY int, elapsed float64, p Params) Stats {
	return Generator{}.Generate(grid, originX, originY, elapsed, p)
}

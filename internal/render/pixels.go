package render

import (
	"image/color"

	"ripple/internal/core"
	"ripple/internal/palette"
)

// Colorizer maps grids through palettes, splitting large grids across
// goroutines by row.
type Colorizer struct {
	// Workers bounds the goroutines used per pass; <= 0 uses GOMAXPROCS.
	Workers int
}

// Colorize returns a new RGB image of the grid mapped through palette id.
func Colorize(grid *core.ByteGrid, id palette.ID) *RGBImage {
	return Colorizer{}.Into(nil, grid, id)
}

// Into writes the colorized grid into dst and returns it. A nil or
// differently sized dst is replaced by a fresh image.
func (c Colorizer) Into(dst *RGBImage, grid *core.ByteGrid, id palette.ID) *RGBImage {
	if dst == nil || dst.Width() != grid.W || dst.Height() != grid.H {
		dst = NewRGBImage(grid.W, grid.H)
	}
	table := palette.Table(id)
	cells := grid.Cells()
	w := grid.W
	core.ForEachRowBand(0, grid.H, c.Workers, func(_, from, to int) {
		fillPaletteRGB(dst.Pix[from*dst.Stride:to*dst.Stride], cells[from*w:to*w], table)
	})
	return dst
}

// fillPaletteRGB converts cell values into RGB triples using a palette. When
// the palette is empty the buffer is cleared to black.
func fillPaletteRGB(buf []byte, cells []uint8, table []color.RGBA) {
	if len(table) == 0 {
		clear(buf[:3*len(cells)])
		return
	}

	last := len(table) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 3
		col := table[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
	}
}

// fillRGBA expands an RGB frame into an opaque RGBA buffer for upload.
func fillRGBA(buf []byte, src *RGBImage) {
	n := src.Width() * src.Height()
	for i := 0; i < n; i++ {
		s := i * 3
		d := i * 4
		buf[d+0] = src.Pix[s+0]
		buf[d+1] = src.Pix[s+1]
		buf[d+2] = src.Pix[s+2]
		buf[d+3] = 0xff
	}
}

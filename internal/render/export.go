package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"

	"ripple/internal/core"
	"ripple/internal/palette"
)

// EncodePNG writes img as a PNG stream.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNG saves img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GIFRecorder collects grid snapshots as GIF frames. The palette table is
// the GIF color table and grid levels are stored as indices, so frames need
// no color quantization.
type GIFRecorder struct {
	pal   color.Palette
	delay int
	anim  gif.GIF
}

// NewGIFRecorder records frames shown for delay hundredths of a second each.
func NewGIFRecorder(id palette.ID, delay int) *GIFRecorder {
	table := palette.Table(id)
	pal := make(color.Palette, len(table))
	for i, c := range table {
		pal[i] = c
	}
	if delay <= 0 {
		delay = 1
	}
	return &GIFRecorder{pal: pal, delay: delay}
}

// AddFrame snapshots the grid.
func (r *GIFRecorder) AddFrame(grid *core.ByteGrid) {
	frame := image.NewPaletted(image.Rect(0, 0, grid.W, grid.H), r.pal)
	copy(frame.Pix, grid.Cells())
	r.anim.Image = append(r.anim.Image, frame)
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

// Frames reports how many frames were recorded.
func (r *GIFRecorder) Frames() int { return len(r.anim.Image) }

// Encode writes the animation.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return fmt.Errorf("encoding gif: no frames recorded")
	}
	if err := gif.EncodeAll(w, &r.anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// WriteFile saves the animation to path.
func (r *GIFRecorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

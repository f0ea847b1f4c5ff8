package render

import (
	"image"
	"image/color"
)

// RGBImage is a row-major pixel buffer with three interleaved bytes
// (R, G, B) per pixel and no padding between rows.
type RGBImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGBImage allocates a w*h image.
func NewRGBImage(w, h int) *RGBImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBImage{Pix: make([]uint8, 3*w*h), Stride: 3 * w, Rect: image.Rect(0, 0, w, h)}
}

// Width returns the image width in pixels.
func (m *RGBImage) Width() int { return m.Rect.Dx() }

// Height returns the image height in pixels.
func (m *RGBImage) Height() int { return m.Rect.Dy() }

// ColorModel implements image.Image.
func (m *RGBImage) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *RGBImage) Bounds() image.Rectangle { return m.Rect }

// At implements image.Image.
func (m *RGBImage) At(x, y int) color.Color {
	return m.RGBAAt(x, y)
}

// RGBAAt returns the opaque color at (x, y).
func (m *RGBImage) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return color.RGBA{}
	}
	i := m.PixOffset(x, y)
	return color.RGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 255}
}

// PixOffset returns the index of the first byte of (x, y).
func (m *RGBImage) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*3
}

// CopyFrom copies src into m when both have the same bounds.
func (m *RGBImage) CopyFrom(src *RGBImage) bool {
	if src == nil || src.Rect != m.Rect {
		return false
	}
	copy(m.Pix, src.Pix)
	return true
}

// Clone returns an independent copy.
func (m *RGBImage) Clone() *RGBImage {
	return &RGBImage{Pix: append([]uint8(nil), m.Pix...), Stride: m.Stride, Rect: m.Rect}
}

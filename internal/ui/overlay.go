//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DebugInfo is the per-frame data shown by the overlay.
type DebugInfo struct {
	Tick       int
	Active     bool
	OriginX    int
	OriginY    int
	Elapsed    float64
	Radius     float64
	Updated    int
	GenerateMS float64
	ColorizeMS float64
	Backend    string
	P95MS      float64
	Overruns   int
}

// Overlay draws optional debugging visuals on top of the wave view.
type Overlay struct {
	scale   int
	visible bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a hidden overlay for the given pixel scale.
func NewOverlay(scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles visibility on D.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.visible = !o.visible
	}
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool { return o.visible }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, info DebugInfo) {
	if !o.visible {
		return
	}
	if info.Active {
		o.drawOrigin(screen, info)
	}

	updated := "n/a"
	if info.Updated >= 0 {
		updated = fmt.Sprint(info.Updated)
	}
	msg := fmt.Sprintf(
		"FPS %.1f  TPS %.1f\ntick %d  backend %s\nt %.2fs  r %.1f  cells %s\ngen %.2fms  color %.2fms\np95 %.2fms  overruns %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		info.Tick, info.Backend,
		info.Elapsed, info.Radius, updated,
		info.GenerateMS, info.ColorizeMS,
		info.P95MS, info.Overruns,
	)
	ebitenutil.DebugPrint(screen, msg)
}

// drawOrigin marks the origin with a crosshair and traces the wavefront.
func (o *Overlay) drawOrigin(screen *ebiten.Image, info DebugInfo) {
	s := float64(o.scale)
	cx := (float64(info.OriginX) + 0.5) * s
	cy := (float64(info.OriginY) + 0.5) * s
	marker := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	const arm = 8.0
	o.drawLine(screen, cx-arm, cy, cx+arm, cy, 1, marker)
	o.drawLine(screen, cx, cy-arm, cx, cy+arm, 1, marker)

	r := info.Radius * s
	if r <= 0 || math.IsInf(r, 0) {
		return
	}
	b := screen.Bounds()
	if r > math.Hypot(float64(b.Dx()), float64(b.Dy()))*2 {
		return
	}
	front := color.RGBA{R: 120, G: 200, B: 255, A: 140}
	segments := int(math.Min(180, math.Max(24, r/4)))
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		o.drawLine(screen, cx+r*math.Cos(a0), cy+r*math.Sin(a0), cx+r*math.Cos(a1), cy+r*math.Sin(a1), 1, front)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

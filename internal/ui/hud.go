//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"ripple/internal/core"
	"ripple/internal/palette"
	"ripple/internal/wave"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Controls is the part of the controller the HUD drives.
type Controls interface {
	Parameters() core.ParameterSnapshot
	Params() wave.Params
	CommitParameters(beta, omega, lambda string) error
	CyclePalette(step int) palette.ID
}

// HUD renders the parameter panel to the right of the wave view.
type HUD struct {
	ctl        Controls
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	form         *ParamForm
	fieldRects   []image.Rectangle
	prevRect     image.Rectangle
	nextRect     image.Rectangle
	setRect      image.Rectangle
	panelOffsetX int
	runes        []rune

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided controller and panel width.
func NewHUD(ctl Controls, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{ctl: ctl, width: width, form: NewParamForm(ctl.Params())}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layout()
	return h
}

// Editing reports whether a text field has keyboard focus. Global key
// bindings should be ignored while it does.
func (h *HUD) Editing() bool { return h != nil && h.form.Editing() }

// SetStatus shows msg on the diagnostic line.
func (h *HUD) SetStatus(msg string, isErr bool) {
	if h != nil {
		h.form.SetDiagnostic(msg, isErr)
	}
}

// Update refreshes the cached parameter snapshot and handles HUD input.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.ctl.Parameters()
	h.handleMouse()
	h.handleKeys()
}

func (h *HUD) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		h.form.SetFocus(-1)
		return
	}
	px := mx - h.panelOffsetX
	switch {
	case pointInRect(px, my, h.prevRect):
		h.ctl.CyclePalette(-1)
		return
	case pointInRect(px, my, h.nextRect):
		h.ctl.CyclePalette(1)
		return
	case pointInRect(px, my, h.setRect):
		h.submit()
		return
	}
	for i, r := range h.fieldRects {
		if pointInRect(px, my, r) {
			h.form.SetFocus(i)
			return
		}
	}
	h.form.SetFocus(-1)
}

func (h *HUD) handleKeys() {
	if !h.form.Editing() {
		return
	}
	h.runes = ebiten.AppendInputChars(h.runes[:0])
	h.form.Insert(h.runes)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		h.form.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.form.FocusNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.form.SetFocus(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.submit()
	}
}

func (h *HUD) submit() {
	_ = h.form.Submit(h.ctl.CommitParameters, h.ctl.Params)
}

// Draw paints the HUD panel anchored to the right edge of the wave view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	errColor   = color.RGBA{R: 235, G: 110, B: 100, A: 255}
	okColor    = color.RGBA{R: 130, G: 200, B: 140, A: 255}
)

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Ripple", face, panelPadding, panelPadding+headerBaseline, titleColor)

	state := "idle"
	if p, ok := h.snapshot.Lookup("state"); ok {
		state = p.Value
	}
	text.Draw(h.panel, "origin: "+state, face, panelPadding, panelPadding+headerBaseline+16, dimColor)

	name := "--"
	if p, ok := h.snapshot.Lookup("palette"); ok {
		name = p.Value
	}
	h.drawButton(h.prevRect, "<", true)
	h.drawButton(h.nextRect, ">", true)
	bounds := text.BoundString(face, name)
	mid := (h.prevRect.Max.X + h.nextRect.Min.X) / 2
	text.Draw(h.panel, name, face, mid-bounds.Dx()/2, h.prevRect.Min.Y+labelBaseline-6, labelColor)

	focus := h.form.Focus()
	for i, field := range h.form.Fields() {
		r := h.fieldRects[i]
		text.Draw(h.panel, field.Label, face, panelPadding, r.Min.Y-4, labelColor)
		bg := color.RGBA{R: 32, G: 34, B: 40, A: 255}
		if i == focus {
			bg = color.RGBA{R: 54, G: 56, B: 72, A: 255}
		}
		h.fillRect(r, bg)
		value := field.Text
		if i == focus {
			value += "_"
		}
		text.Draw(h.panel, value, face, r.Min.X+6, r.Min.Y+labelBaseline-6, labelColor)
	}
	h.drawButton(h.setRect, "Set", true)

	msg, isErr := h.form.Diagnostic()
	col := okColor
	if isErr {
		col = errColor
	}
	y := h.setRect.Max.Y + infoSpacing
	for _, line := range wrap(msg, (h.width-2*panelPadding)/7) {
		text.Draw(h.panel, line, face, panelPadding, y, col)
		y += 16
	}

	y += infoSpacing / 2
	for _, line := range []string{"click: set origin", "C clear  S save", "D debug  Q quit"} {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += 16
	}
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	top := controlsTop
	h.prevRect = image.Rect(panelPadding, top, panelPadding+buttonSize, top+buttonSize)
	h.nextRect = image.Rect(h.width-panelPadding-buttonSize, top, h.width-panelPadding, top+buttonSize)

	top += lineHeight + labelHeight
	h.fieldRects = h.fieldRects[:0]
	for range h.form.Fields() {
		h.fieldRects = append(h.fieldRects, image.Rect(panelPadding, top, h.width-panelPadding, top+buttonSize))
		top += lineHeight + labelHeight
	}
	h.setRect = image.Rect(h.width-panelPadding-setWidth, top-labelHeight, h.width-panelPadding, top-labelHeight+buttonSize)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	// PanelWidth is the default HUD width in screen pixels.
	PanelWidth = 200
	// MinPanelHeight keeps every control visible on short grids.
	MinPanelHeight = 400

	panelPadding   = 12
	lineHeight     = 36
	labelHeight    = 14
	buttonSize     = 24
	setWidth       = 56
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 28
	controlsTop    = panelPadding + headerBaseline + 30
)

//go:build ebiten

package app

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"ripple/internal/render"
	"ripple/internal/telemetry"
	"ripple/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SaveFunc stores a snapshot and returns where it went. It runs off the
// game loop and may block on a dialog.
type SaveFunc func(img image.Image) (string, error)

// ErrSaveCanceled is returned by a SaveFunc when the user backs out.
var ErrSaveCanceled = errors.New("save canceled")

type status struct {
	msg   string
	isErr bool
}

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctl      *Controller
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	recorder *telemetry.Recorder
	save     SaveFunc
	logger   *slog.Logger

	scale   int
	statusC chan status
	saving  bool
}

// New constructs a Game for the provided controller. recorder and save may
// be nil.
func New(ctl *Controller, scale int, recorder *telemetry.Recorder, save SaveFunc, logger *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := ctl.Size()
	return &Game{
		ctl:      ctl,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(ctl, ui.PanelWidth),
		overlay:  ui.NewOverlay(scale),
		recorder: recorder,
		save:     save,
		logger:   logger,
		scale:    scale,
		statusC:  make(chan status, 4),
	}
}

// Update handles input and advances the wave by one tick.
func (g *Game) Update() error {
	if !g.hud.Editing() {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.ctl.Clear()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.saveSnapshot()
		}
		g.overlay.Update()
	}

	select {
	case s := <-g.statusC:
		g.saving = false
		g.hud.SetStatus(s.msg, s.isErr)
	default:
	}

	fieldW, fieldH := g.fieldSize()
	g.hud.Update(fieldW)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if mx >= 0 && my >= 0 && mx < fieldW && my < fieldH {
			g.ctl.Click(mx/g.scale, my/g.scale)
		}
	}

	frame, err := g.ctl.Tick()
	if err != nil {
		return err
	}
	if g.recorder != nil {
		if err := g.recorder.Record(frame.Sample()); err != nil {
			g.logger.Warn("telemetry write failed", "err", err)
			g.recorder = nil
		}
	}
	return nil
}

func (g *Game) saveSnapshot() {
	if g.save == nil || g.saving {
		return
	}
	g.saving = true
	img := g.ctl.Frame().Image.Clone()
	go func() {
		path, err := g.save(img)
		switch {
		case errors.Is(err, ErrSaveCanceled):
			g.statusC <- status{msg: "save canceled"}
		case err != nil:
			g.logger.Error("snapshot failed", "err", err)
			g.statusC <- status{msg: err.Error(), isErr: true}
		default:
			g.logger.Info("snapshot saved", "path", path)
			g.statusC <- status{msg: "saved " + path}
		}
	}()
}

// Draw renders the current frame, the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.ctl.Frame()
	g.painter.Blit(screen, frame.Image, g.scale)

	if g.overlay.Visible() {
		snap := g.ctl.Snapshot()
		info := ui.DebugInfo{
			Tick:       frame.Tick,
			Active:     snap.Active,
			OriginX:    snap.Origin.X,
			OriginY:    snap.Origin.Y,
			Elapsed:    frame.Elapsed,
			Radius:     frame.Stats.Radius,
			Updated:    frame.Stats.Updated,
			GenerateMS: ms(frame.GenerateTime),
			ColorizeMS: ms(frame.ColorizeTime),
			Backend:    g.ctl.Backend(),
		}
		if g.recorder != nil {
			if sum, ok := g.recorder.Last(); ok {
				info.P95MS = sum.P95MS
				info.Overruns = sum.Overruns
			}
		}
		g.overlay.Draw(screen, info)
	}

	fieldW, _ := g.fieldSize()
	g.hud.Draw(screen, fieldW, screen.Bounds().Dy())
}

// Layout returns the logical screen size: the scaled field plus the panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.fieldSize()
	return w + ui.PanelWidth, max(h, ui.MinPanelHeight)
}

func (g *Game) fieldSize() (int, int) {
	s := g.ctl.Size()
	return s.W * g.scale, s.H * g.scale
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ripple/internal/app"
	"ripple/internal/render"
	"ripple/internal/telemetry"
	"ripple/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	file, err := cfg.Resolve(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		log.Fatal(err)
	}
	ctl, err := app.NewController(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer ctl.Close()

	writer, err := telemetry.NewWriter(file.Telemetry.Dir)
	if err != nil {
		log.Fatal(err)
	}
	defer writer.Close()
	budget := time.Duration(file.Telemetry.BudgetMS * float64(time.Millisecond))
	recorder := telemetry.NewRecorder(file.Telemetry.Window, budget, writer, logger)

	game := app.New(ctl, cfg.Scale, recorder, saveDialog, logger)

	ebiten.SetWindowTitle("ripple")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale+ui.PanelWidth, max(cfg.Height*cfg.Scale, ui.MinPanelHeight))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	if err := recorder.Flush(); err != nil {
		logger.Warn("telemetry flush failed", "err", err)
	}
}

// saveDialog asks for a PNG path and writes img there.
func saveDialog(img image.Image) (string, error) {
	name := fmt.Sprintf("ripple-%s.png", time.Now().Format("20060102-150405"))
	path, err := zenity.SelectFileSave(
		zenity.Title("Save snapshot"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG images",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", app.ErrSaveCanceled
		}
		return "", fmt.Errorf("save dialog: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	if err := render.WritePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

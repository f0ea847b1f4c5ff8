package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ripple/internal/app"
	"ripple/internal/telemetry"
	"ripple/internal/tui"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	fps := flag.Int("fps", 30, "terminal refresh rate")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the UI)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "ripple")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	file, err := cfg.Resolve(flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	base, err := cfg.Options(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	writer, err := telemetry.NewWriter(file.Telemetry.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer writer.Close()
	budget := time.Duration(file.Telemetry.BudgetMS * float64(time.Millisecond))
	recorder := telemetry.NewRecorder(file.Telemetry.Window, budget, writer, logger)

	factory := func(w, h int) (*app.Controller, error) {
		opts := base
		opts.Width, opts.Height = w, h
		return app.NewController(opts)
	}
	model := tui.New(factory, tui.Options{FPS: *fps, Budget: budget, Recorder: recorder})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := recorder.Flush(); err != nil {
		logger.Warn("telemetry flush failed", "err", err)
	}
	m := final.(tui.Model)
	if ctl := m.Controller(); ctl != nil {
		ctl.Close()
	}
	if err := m.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ripple/internal/app"
	"ripple/internal/core"
	"ripple/internal/palette"
	"ripple/internal/wave"
)

func testModel(t *testing.T) (Model, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(1700000000, 0))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := func(w, h int) (*app.Controller, error) {
		return app.NewController(app.Options{Width: w, Height: h, Clock: clock, Logger: logger, Workers: 1})
	}
	m := New(factory, Options{FPS: 20})
	m = update(t, m, tea.WindowSizeMsg{Width: 24, Height: 15})
	if m.Controller() == nil {
		t.Fatal("no controller after resize")
	}
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResizeSizesGridToTerminal(t *testing.T) {
	m, _ := testModel(t)
	size := m.Controller().Size()
	if size.W != 24 || size.H != (15-statusRows)*2 {
		t.Fatalf("grid %dx%d", size.W, size.H)
	}
}

func TestMouseClickSetsOrigin(t *testing.T) {
	m, clock := testModel(t)
	m = update(t, m, tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	o, ok := m.Controller().Origin()
	if !ok || o.X != 5 || o.Y != 6 {
		t.Fatalf("origin %+v, %v", o, ok)
	}

	m = update(t, m, tea.MouseMsg{X: 1, Y: 14, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if o, _ := m.Controller().Origin(); o.X != 5 {
		t.Fatal("click on the status area moved the origin")
	}

	clock.Advance(200 * time.Millisecond)
	m = update(t, m, tickMsg(time.Now()))
	if f := m.Controller().Frame(); !f.Active || f.Tick != 1 {
		t.Fatalf("frame after tick %+v", f)
	}
	if !strings.Contains(m.View(), "▀") {
		t.Fatal("view does not draw the field")
	}
}

func TestCommitRejectsBadInput(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, key("tab"))
	if m.focus != 0 {
		t.Fatalf("focus %d", m.focus)
	}
	m.inputs[0].SetValue("abc")
	m = update(t, m, key("enter"))

	if m.Controller().Params() != wave.DefaultParams() {
		t.Fatalf("params changed to %+v", m.Controller().Params())
	}
	if !m.statusErr || !strings.Contains(m.status, "beta") {
		t.Fatalf("status %q err=%v", m.status, m.statusErr)
	}

	m.inputs[0].SetValue("0.7")
	m = update(t, m, key("enter"))
	if got := m.Controller().Params().Beta; got != 0.7 {
		t.Fatalf("beta = %v", got)
	}
	if m.focus != -1 || m.statusErr {
		t.Fatalf("focus %d status %q", m.focus, m.status)
	}
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, key("tab"))
	m = update(t, m, key("tab"))
	m = update(t, m, key("1"))
	if got := m.inputs[1].Value(); got != "51" {
		t.Fatalf("omega text %q", got)
	}
	m = update(t, m, key("p"))
	if m.Controller().Palette() != palette.Autumn {
		t.Fatal("palette key handled while editing")
	}
	m = update(t, m, key("esc"))
	m = update(t, m, key("p"))
	if m.Controller().Palette() != palette.Bone {
		t.Fatalf("palette %v", m.Controller().Palette())
	}
	m = update(t, m, key("P"))
	m = update(t, m, key("P"))
	if m.Controller().Palette() != palette.Turbo {
		t.Fatalf("palette %v", m.Controller().Palette())
	}
}

func TestResizeKeepsSettings(t *testing.T) {
	m, _ := testModel(t)
	if err := m.Controller().CommitParameters("1", "2", "3"); err != nil {
		t.Fatal(err)
	}
	if err := m.Controller().SelectPalette("ocean"); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	ctl := m.Controller()
	if ctl.Size().W != 40 {
		t.Fatalf("grid width %d", ctl.Size().W)
	}
	if ctl.Params() != (wave.Params{Beta: 1, Omega: 2, Lambda: 3}) || ctl.PaletteName() != "ocean" {
		t.Fatalf("settings lost: %+v %s", ctl.Params(), ctl.PaletteName())
	}
}

func TestFactoryErrorStops(t *testing.T) {
	boom := errors.New("boom")
	m := New(func(int, int) (*app.Controller, error) { return nil, boom }, Options{})
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	if cmd == nil || !errors.Is(next.(Model).Err(), boom) {
		t.Fatalf("err = %v", next.(Model).Err())
	}
}

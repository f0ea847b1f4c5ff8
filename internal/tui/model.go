// Package tui renders the wave field in a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"ripple/internal/app"
	"ripple/internal/telemetry"
	"ripple/internal/wave"
)

// statusRows is the number of terminal rows below the field.
const statusRows = 5

const gaugeWidth = 20

// Factory builds a controller for a w x h grid.
type Factory func(w, h int) (*app.Controller, error)

// Options configures a Model.
type Options struct {
	FPS      int
	Budget   time.Duration
	Recorder *telemetry.Recorder
}

// Model is the bubbletea model of the terminal front end. The grid is sized
// to the terminal: one column per cell and two cells per row, drawn with
// upper half blocks.
type Model struct {
	factory  Factory
	ctl      *app.Controller
	interval time.Duration
	budget   time.Duration
	recorder *telemetry.Recorder

	inputs []textinput.Model
	focus  int

	width, height int

	status    string
	statusErr bool

	spring   harmonica.Spring
	gauge    float64
	gaugeVel float64
	lastCost time.Duration

	err error
}

// New returns a model that creates its controller on the first window size
// message.
func New(factory Factory, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Budget <= 0 {
		opts.Budget = 10 * time.Millisecond
	}
	m := Model{
		factory:  factory,
		interval: time.Second / time.Duration(opts.FPS),
		budget:   opts.Budget,
		recorder: opts.Recorder,
		focus:    -1,
		spring:   harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.8),
	}
	for _, label := range []string{"β ", "ω ", "λ "} {
		ti := textinput.New()
		ti.Prompt = label
		ti.CharLimit = 16
		ti.Width = 8
		m.inputs = append(m.inputs, ti)
	}
	m.loadInputs(wave.DefaultParams())
	return m
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Controller returns the active controller, or nil before the first resize.
func (m Model) Controller() *app.Controller { return m.ctl }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("ripple"), tickCmd(m.interval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		if m.ctl == nil {
			return m, tickCmd(m.interval)
		}
		frame, err := m.ctl.Tick()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.lastCost = frame.GenerateTime + frame.ColorizeTime
		target := float64(m.lastCost) / float64(m.budget)
		m.gauge, m.gaugeVel = m.spring.Update(m.gauge, m.gaugeVel, target)
		if m.recorder != nil {
			if err := m.recorder.Record(frame.Sample()); err != nil {
				m.setStatus("telemetry: "+err.Error(), true)
				m.recorder = nil
			}
		}
		return m, tickCmd(m.interval)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.ctl == nil || msg.Y >= m.fieldRows() {
			return m, nil
		}
		m.blur()
		m.ctl.Click(msg.X, msg.Y*2)
		return m, nil

	case tea.KeyMsg:
		if m.focus >= 0 {
			return m.updateInputs(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.focusInput(0)
		case "p":
			m.cyclePalette(1)
		case "P":
			m.cyclePalette(-1)
		case "c":
			if m.ctl != nil {
				m.ctl.Clear()
			}
		case "r":
			if m.ctl != nil {
				m.ctl.Reset()
				m.setStatus("reset", false)
			}
		}
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.commit()
		return m, nil
	case "tab":
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case "shift+tab":
		return m, m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "esc":
		m.blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.blur()
	m.focus = i
	m.inputs[i].CursorEnd()
	return m.inputs[i].Focus()
}

func (m *Model) blur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = -1
}

func (m *Model) commit() {
	if m.ctl == nil {
		return
	}
	err := m.ctl.CommitParameters(m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value())
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.loadInputs(m.ctl.Params())
	m.blur()
	m.setStatus("parameters set", false)
}

func (m *Model) cyclePalette(step int) {
	if m.ctl == nil {
		return
	}
	m.setStatus("palette "+m.ctl.CyclePalette(step).String(), false)
}

func (m *Model) loadInputs(p wave.Params) {
	for i, v := range []float64{p.Beta, p.Omega, p.Lambda} {
		m.inputs[i].SetValue(wave.Format(v))
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = strings.Join(strings.Fields(strings.ReplaceAll(msg, "\n", "; ")), " ")
	m.statusErr = isErr
}

// resize rebuilds the controller for the new terminal size, carrying the
// committed parameters and palette over.
func (m *Model) resize(w, h int) error {
	m.width, m.height = w, h
	gw, gh := max(w, 1), max(m.fieldRows()*2, 2)
	if m.ctl != nil {
		size := m.ctl.Size()
		if size.W == gw && size.H == gh {
			return nil
		}
	}
	next, err := m.factory(gw, gh)
	if err != nil {
		return fmt.Errorf("resizing to %dx%d: %w", gw, gh, err)
	}
	if m.ctl != nil {
		snap := m.ctl.Snapshot()
		p := snap.Params
		if err := next.CommitParameters(wave.Format(p.Beta), wave.Format(p.Omega), wave.Format(p.Lambda)); err != nil {
			return err
		}
		if err := next.SelectPalette(snap.Palette.String()); err != nil {
			return err
		}
		m.ctl.Close()
	}
	m.ctl = next
	m.loadInputs(next.Params())
	return nil
}

func (m Model) fieldRows() int {
	return max(m.height-statusRows, 1)
}

func (m Model) View() string {
	if m.ctl == nil {
		return "\n  " + statusStyle.Render("waiting for terminal size...") + "\n"
	}

	var b strings.Builder
	m.renderField(&b)

	snap := m.ctl.Snapshot()
	state := wave.Idle
	if snap.Active {
		state = wave.Active
	}
	header := titleStyle.Render("ripple") + "  " +
		labelStyle.Render("palette ") + statusStyle.Render(snap.Palette.String()) + "  " +
		labelStyle.Render("origin ") + statusStyle.Render(state.String())
	if snap.Active {
		header += statusStyle.Render(fmt.Sprintf(" (%d,%d)", snap.Origin.X, snap.Origin.Y))
	}
	b.WriteString(header + "\n")

	fields := make([]string, len(m.inputs))
	for i := range m.inputs {
		fields[i] = m.inputs[i].View()
	}
	b.WriteString(strings.Join(fields, "  ") + "\n")

	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("tick ") + m.renderGauge() +
		statusStyle.Render(fmt.Sprintf(" %.2fms / %.0fms", float64(m.lastCost)/float64(time.Millisecond), float64(m.budget)/float64(time.Millisecond))) + "\n")
	b.WriteString(helpStyle.Render("click origin  tab edit  enter set  p/P palette  c clear  r reset  q quit"))
	return b.String()
}

// renderField draws two grid rows per terminal row: the upper cell as the
// foreground of "▀" and the lower one as its background.
func (m Model) renderField(b *strings.Builder) {
	img := m.ctl.Frame().Image
	if img == nil {
		return
	}
	w, h := img.Width(), img.Height()
	for ty := 0; ty*2 < h; ty++ {
		y := ty * 2
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < h {
				bottom = img.RGBAAt(x, y+1)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render("▀"))
		}
		b.WriteByte('\n')
	}
}

func (m Model) renderGauge() string {
	ratio := max(m.gauge, 0)
	filled := min(int(ratio*gaugeWidth+0.5), gaugeWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	if ratio > 1 {
		return gaugeOverStyle.Render(bar)
	}
	return gaugeStyle.Render(bar)
}

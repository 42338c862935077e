package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/drift/internal/canvas"
	"github.com/olivier-w/drift/internal/config"
	"github.com/olivier-w/drift/internal/field"
	"github.com/olivier-w/drift/internal/render"
	"github.com/olivier-w/drift/internal/util"
)

// hudRows is the height of the status and help lines below the field.
const hudRows = 2

// Model is the Bubbletea model for the drift TUI. It owns the drawing
// surface, the field running on it and the renderer that turns the surface
// into terminal cells.
type Model struct {
	host     *teaHost
	canvas   *canvas.Canvas
	field    *field.Field
	renderer *render.Renderer
	meter    *util.RateMeter
	keys     keyMap
	help     help.Model

	state     RunState
	showHUD   bool
	width     int
	height    int
	started   time.Time
	lastTicks uint64
	err       error
	quitting  bool
}

// New builds the field for cfg and starts its frame loop. The surface is
// empty until the first window size arrives.
func New(cfg config.Config, opts ...field.Option) (Model, error) {
	ropts, err := cfg.Display.RenderOptions()
	if err != nil {
		return Model{}, err
	}

	host := newTeaHost(cfg.Display.RefreshRate)
	c := canvas.New(0, 0)
	f, err := field.New(c, host, cfg.Field, opts...)
	if err != nil {
		return Model{}, err
	}
	if err := f.Initialize(); err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShortSeparator = "  "

	return Model{
		host:     host,
		canvas:   c,
		field:    f,
		renderer: render.NewRenderer(ropts),
		meter:    util.NewRateMeter(cfg.Display.RefreshRate),
		keys:     defaultKeyMap(),
		help:     h,
		showHUD:  cfg.Display.HUD,
		started:  host.Now(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.host.drain(), tea.SetWindowTitle(windowTitle(m.state)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.field.Stop()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case key.Matches(msg, m.keys.Pause):
			m.state = m.state.Toggle()
			if m.state == Paused {
				m.field.Stop()
			} else {
				m.meter.Reset()
				m.field.Start()
			}
			return m, tea.Batch(m.host.drain(), tea.SetWindowTitle(windowTitle(m.state)))
		case key.Matches(msg, m.keys.Relayout):
			m.err = m.field.Initialize()
			m.holdIfPaused()
		case key.Matches(msg, m.keys.HUD):
			m.showHUD = !m.showHUD
			m.resize()
		}
		return m, m.host.drain()

	case tea.MouseMsg:
		m.pointer(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, m.host.drain()

	case frameMsg:
		if !m.host.fire(msg.id) {
			return m, nil // cancelled or superseded
		}
		if ticks := m.field.Stats().Ticks; ticks != m.lastTicks {
			m.lastTicks = ticks
			m.meter.Observe(msg.at)
		}
		return m, m.host.drain()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	if rows := m.surfaceRows(); rows > 0 && m.width > 0 {
		lines = append(lines, m.renderer.Frame(m.canvas.Image(), m.width, rows))
	}
	if m.showHUD {
		lines = append(lines, m.statusLine(), " "+m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

func (m Model) surfaceRows() int {
	if m.showHUD {
		return max(m.height-hudRows, 0)
	}
	return max(m.height, 0)
}

// resize hands the field a viewport matching the cells left for it.
func (m *Model) resize() {
	w, h := m.renderer.SurfaceSize(m.width, m.surfaceRows())
	m.host.setViewport(w, h)
	m.host.dispatch(field.Event{Kind: field.Resize})
	m.holdIfPaused()
}

// holdIfPaused undoes the restart a re-initialization performs while the
// loop is paused and redraws the particles in place.
func (m *Model) holdIfPaused() {
	if m.state != Paused {
		return
	}
	m.field.Stop()
	m.field.Redraw()
}

func (m *Model) pointer(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionRelease || tea.MouseEvent(msg).IsWheel() {
		return
	}
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.width || msg.Y >= m.surfaceRows() {
		return
	}
	x, y := m.renderer.CellCenter(msg.X, msg.Y)
	m.host.dispatch(field.Event{Kind: field.PointerMove, X: x, Y: y})
}

func (m Model) statusLine() string {
	stats := m.field.Stats()
	near := len(m.field.Near())

	pointer := "-"
	if p, ok := m.field.Pointer(); ok {
		pointer = util.FormatPoint(p.X, p.Y)
	}

	parts := []string{
		headerStyle.Render("drift"),
		statusStyle.Render(fmt.Sprintf("%s %s", m.state.Icon(), m.state)),
		statusStyle.Render(renderCount(stats.Particles, "particle")),
		rateStyle.Render(util.FormatRate(m.meter.Value(), "fps")),
		dimStyle.Render(fmt.Sprintf("near %s %d", renderNearBar(near, stats.Particles, 10), near)),
		dimStyle.Render("pointer " + pointer),
		dimStyle.Render("up " + util.FormatDuration(m.host.Now().Sub(m.started))),
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	return " " + strings.Join(parts, spaces(2))
}

func windowTitle(state RunState) string {
	if state == Paused {
		return "❚❚ drift"
	}
	return "drift"
}

// Run starts the bubbletea program and blocks until the user quits.
func Run(cfg config.Config, opts ...field.Option) error {
	m, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

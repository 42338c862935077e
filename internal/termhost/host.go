// Package termhost runs a field directly on a tcell screen, without
// bubbletea. One goroutine polls terminal events; everything else, including
// frame callbacks, runs on the goroutine that calls Loop.
package termhost

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/olivier-w/drift/internal/canvas"
	"github.com/olivier-w/drift/internal/config"
	"github.com/olivier-w/drift/internal/field"
	"github.com/olivier-w/drift/internal/render"
	"github.com/olivier-w/drift/internal/util"
)

const hudRows = 2

// Host implements field.Host on a tcell screen.
type Host struct {
	screen   tcell.Screen
	canvas   *canvas.Canvas
	field    *field.Field
	renderer *render.Renderer
	meter    *util.RateMeter

	interval time.Duration
	now      func() time.Time
	timer    *time.Timer
	seq      field.FrameID
	pending  field.FrameID
	cb       func()

	listener      field.Listener
	width, height int // surface pixels

	cols, rows int // screen cells
	paused     bool
	showHUD    bool
	started    time.Time
	lastTicks  uint64
	err        error
}

// New binds a field to an initialized screen and starts its frame loop.
func New(screen tcell.Screen, cfg config.Config, opts ...field.Option) (*Host, error) {
	ropts, err := cfg.Display.RenderOptions()
	if err != nil {
		return nil, err
	}

	interval := time.Second / 60
	if cfg.Display.RefreshRate > 0 {
		interval = time.Duration(float64(time.Second) / cfg.Display.RefreshRate)
	}
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	h := &Host{
		screen:   screen,
		canvas:   canvas.New(0, 0),
		renderer: render.NewRenderer(ropts),
		meter:    util.NewRateMeter(cfg.Display.RefreshRate),
		interval: interval,
		now:      time.Now,
		timer:    timer,
		showHUD:  cfg.Display.HUD,
	}
	h.started = h.now()
	h.cols, h.rows = screen.Size()
	h.setViewport()

	h.field, err = field.New(h.canvas, h, cfg.Field, opts...)
	if err != nil {
		return nil, err
	}
	if err := h.field.Initialize(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) RequestFrame(cb func()) field.FrameID {
	h.seq++
	h.pending = h.seq
	h.cb = cb
	h.timer.Reset(h.interval)
	return h.seq
}

func (h *Host) CancelFrame(id field.FrameID) {
	if id == 0 || id != h.pending {
		return
	}
	h.pending = 0
	h.cb = nil
	h.timer.Stop()
}

func (h *Host) Now() time.Time { return h.now() }

func (h *Host) Viewport() (int, int) { return h.width, h.height }

func (h *Host) Listen(l field.Listener) { h.listener = l }

// Field returns the field the host drives.
func (h *Host) Field() *field.Field { return h.field }

// Loop pumps events and frames until the user quits or ctx is done.
func (h *Host) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
			h.draw()
		case <-h.timer.C:
			if h.fire() {
				h.draw()
			}
		}
	}
}

// fire runs the pending frame callback.
func (h *Host) fire() bool {
	if h.pending == 0 {
		return false
	}
	cb := h.cb
	h.pending = 0
	h.cb = nil
	cb()

	if ticks := h.field.Stats().Ticks; ticks != h.lastTicks {
		h.lastTicks = ticks
		h.meter.Observe(h.now())
	}
	return true
}

func (h *Host) dispatch(ev field.Event) {
	if h.listener != nil {
		h.listener(ev)
	}
}

// handleEvent reacts to one terminal event. It returns false on quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.cols, h.rows = ev.Size()
		h.resize()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.field.Stop()
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		h.field.Stop()
		return false
	case ' ':
		h.paused = !h.paused
		if h.paused {
			h.field.Stop()
		} else {
			h.meter.Reset()
			h.field.Start()
		}
	case 'r':
		h.err = h.field.Initialize()
		h.holdIfPaused()
	case 'h':
		h.showHUD = !h.showHUD
		h.resize()
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	wheel := tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
	if ev.Buttons()&wheel != 0 {
		return
	}
	col, row := ev.Position()
	if col < 0 || row < 0 || col >= h.cols || row >= h.surfaceRows() {
		return
	}
	x, y := h.renderer.CellCenter(col, row)
	h.dispatch(field.Event{Kind: field.PointerMove, X: x, Y: y})
}

func (h *Host) surfaceRows() int {
	if h.showHUD {
		return max(h.rows-hudRows, 0)
	}
	return max(h.rows, 0)
}

func (h *Host) setViewport() {
	h.width, h.height = h.renderer.SurfaceSize(h.cols, h.surfaceRows())
}

func (h *Host) resize() {
	h.setViewport()
	h.screen.Clear()
	h.dispatch(field.Event{Kind: field.Resize})
	h.holdIfPaused()
}

// holdIfPaused keeps a re-initialized field stopped while paused and draws
// its particles without moving them.
func (h *Host) holdIfPaused() {
	if !h.paused {
		return
	}
	h.field.Stop()
	h.field.Redraw()
}

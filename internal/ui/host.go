package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/drift/internal/field"
)

// teaHost adapts the bubbletea event loop to field.Host. Frames become
// tea.Tick commands that are collected while Update runs and handed back to
// bubbletea with drain.
type teaHost struct {
	interval time.Duration
	now      func() time.Time

	seq     field.FrameID
	pending field.FrameID
	cb      func()
	cmds    []tea.Cmd

	width, height int
	listener      field.Listener
}

func newTeaHost(refreshRate float64) *teaHost {
	interval := time.Second / 60
	if refreshRate > 0 {
		interval = time.Duration(float64(time.Second) / refreshRate)
	}
	return &teaHost{interval: interval, now: time.Now}
}

func (h *teaHost) RequestFrame(cb func()) field.FrameID {
	h.seq++
	h.pending = h.seq
	h.cb = cb
	h.cmds = append(h.cmds, frameCmd(h.seq, h.interval))
	return h.seq
}

func (h *teaHost) CancelFrame(id field.FrameID) {
	if id != 0 && id == h.pending {
		h.pending = 0
		h.cb = nil
	}
}

func (h *teaHost) Now() time.Time { return h.now() }

func (h *teaHost) Viewport() (int, int) { return h.width, h.height }

func (h *teaHost) Listen(l field.Listener) { h.listener = l }

// fire runs the callback for id if it is still the pending frame.
func (h *teaHost) fire(id field.FrameID) bool {
	if id == 0 || id != h.pending {
		return false
	}
	cb := h.cb
	h.pending = 0
	h.cb = nil
	cb()
	return true
}

func (h *teaHost) dispatch(ev field.Event) bool {
	if h.listener == nil {
		return false
	}
	return h.listener(ev)
}

func (h *teaHost) setViewport(width, height int) {
	h.width, h.height = max(width, 0), max(height, 0)
}

// drain returns the commands queued since the last call.
func (h *teaHost) drain() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	cmds := h.cmds
	h.cmds = nil
	return tea.Batch(cmds...)
}

package termhost

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/olivier-w/drift/internal/render"
	"github.com/olivier-w/drift/internal/util"
)

var (
	headerStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

const helpText = "space pause  r re-layout  h hud  q quit"

func cellStyle(c render.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.HasFg {
		style = style.Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
	}
	if c.HasBg {
		style = style.Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
	}
	return style
}

// draw copies the surface and the HUD onto the screen.
func (h *Host) draw() {
	h.renderer.Cells(h.canvas.Image(), h.cols, h.surfaceRows(), func(col, row int, c render.Cell) {
		h.screen.SetContent(col, row, c.Rune, nil, cellStyle(c))
	})
	if h.showHUD && h.rows >= hudRows {
		h.drawHUD(h.rows - hudRows)
	}
	h.screen.Show()
}

func (h *Host) drawHUD(y int) {
	stats := h.field.Stats()

	state := "running"
	if h.paused {
		state = "paused"
	}
	pointer := "-"
	if p, ok := h.field.Pointer(); ok {
		pointer = util.FormatPoint(p.X, p.Y)
	}

	x := h.putString(1, y, "drift", headerStyle)
	x = h.putString(x+2, y, fmt.Sprintf("%s  %d particles  %s  near %d  pointer %s  up %s",
		state,
		stats.Particles,
		util.FormatRate(h.meter.Value(), "fps"),
		len(h.field.Near()),
		pointer,
		util.FormatDuration(h.now().Sub(h.started)),
	), statusStyle)
	if h.err != nil {
		x = h.putString(x+2, y, h.err.Error(), errorStyle)
	}
	h.clearRow(x, y)

	x = h.putString(1, y+1, helpText, helpStyle)
	h.clearRow(x, y+1)
}

// putString writes s from column x and returns the column after it.
func (h *Host) putString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= h.cols {
			break
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (h *Host) clearRow(x, y int) {
	if x < h.cols {
		h.putString(x, y, strings.Repeat(" ", h.cols-x), tcell.StyleDefault)
	}
}

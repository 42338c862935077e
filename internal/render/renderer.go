// Package render turns canvas pixels into terminal cells.
package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how a terminal cell encodes the pixels it covers.
type Mode uint8

const (
	// ModeHalfBlock packs two pixel blocks per cell with "▀": fg is the
	// upper block, bg the lower one.
	ModeHalfBlock Mode = iota
	// ModeBraille gives each cell a 2x4 dot grid.
	ModeBraille
	// ModeASCII maps coverage to a brightness ramp, without color.
	ModeASCII
)

func (m Mode) String() string {
	switch m {
	case ModeBraille:
		return "braille"
	case ModeASCII:
		return "ascii"
	default:
		return "halfblock"
	}
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "halfblock", "half-block":
		return ModeHalfBlock, nil
	case "braille":
		return ModeBraille, nil
	case "ascii":
		return ModeASCII, nil
	}
	return 0, fmt.Errorf("unknown render mode %q (want halfblock, braille or ascii)", s)
}

// ASCII coverage ramp from empty to solid.
const asciiRamp = " .:-=+*#%@"

// Cell is one rendered terminal cell.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	HasFg bool
	HasBg bool
}

// Options configures a Renderer.
type Options struct {
	Mode       Mode
	CellWidth  int // surface pixels per terminal column
	CellHeight int // surface pixels per terminal row
	Background RGB
}

// Renderer converts an RGBA surface into terminal cells.
type Renderer struct {
	opts Options
	mode colorMode
	bg   colorful.Color
	sb   strings.Builder // reused across frames
}

// NewRenderer creates a renderer using the current terminal's color
// capabilities. Without color support half-block output degrades to ASCII.
func NewRenderer(opts Options) *Renderer {
	return newRenderer(opts, detectColorMode())
}

func newRenderer(opts Options, mode colorMode) *Renderer {
	opts.CellWidth = max(opts.CellWidth, 1)
	opts.CellHeight = max(opts.CellHeight, 1)
	if mode == colorOff && opts.Mode == ModeHalfBlock {
		opts.Mode = ModeASCII
	}
	return &Renderer{
		opts: opts,
		mode: mode,
		bg:   toColorful(opts.Background),
	}
}

// Mode returns the effective render mode.
func (r *Renderer) Mode() Mode { return r.opts.Mode }

// SurfaceSize returns the surface size in pixels that a cols x rows cell
// grid covers.
func (r *Renderer) SurfaceSize(cols, rows int) (int, int) {
	return max(cols, 0) * r.opts.CellWidth, max(rows, 0) * r.opts.CellHeight
}

// CellCenter maps a terminal cell to the surface point at its center.
func (r *Renderer) CellCenter(col, row int) (float64, float64) {
	cw, ch := float64(r.opts.CellWidth), float64(r.opts.CellHeight)
	return float64(col)*cw + cw/2, float64(row)*ch + ch/2
}

// Cells walks a cols x rows grid over img and reports each cell to fn in
// row-major order.
func (r *Renderer) Cells(img *image.RGBA, cols, rows int, fn func(col, row int, c Cell)) {
	if img == nil {
		return
	}
	for row := range rows {
		for col := range cols {
			fn(col, row, r.cell(img, col, row))
		}
	}
}

// Frame renders img as rows lines of cols cells with ANSI color escapes.
func (r *Renderer) Frame(img *image.RGBA, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	r.sb.Reset()
	// Worst case ~40 bytes per cell with fg and bg escapes.
	r.sb.Grow(cols * rows * 40)

	state := newANSIState(r.mode)
	for row := range rows {
		if row > 0 {
			r.sb.WriteByte('\n')
		}
		for col := range cols {
			c := r.cell(img, col, row)
			state.set(&r.sb, c)
			r.sb.WriteRune(c.Rune)
		}
		state.reset(&r.sb)
	}
	return r.sb.String()
}

func (r *Renderer) cell(img *image.RGBA, col, row int) Cell {
	cw, ch := r.opts.CellWidth, r.opts.CellHeight
	x0, y0 := col*cw, row*ch

	switch r.opts.Mode {
	case ModeBraille:
		return r.brailleCell(img, x0, y0)
	case ModeASCII:
		s := pool(img, image.Rect(x0, y0, x0+cw, y0+ch))
		idx := int(s.a) * (len(asciiRamp) - 1) / 255
		return Cell{Rune: rune(asciiRamp[idx])}
	default:
		mid := y0 + max(ch/2, 1)
		top := pool(img, image.Rect(x0, y0, x0+cw, mid))
		bot := pool(img, image.Rect(x0, mid, x0+cw, y0+ch))
		return Cell{
			Rune:  '▀',
			Fg:    r.blend(top),
			Bg:    r.blend(bot),
			HasFg: true,
			HasBg: true,
		}
	}
}

// blend composites a pooled sample over the background.
func (r *Renderer) blend(s sample) RGB {
	if s.a == 0 {
		return fromColorful(r.bg)
	}
	fg := toColorful(s.rgb)
	return fromColorful(r.bg.BlendRgb(fg, float64(s.a)/255).Clamped())
}

// sample is the most opaque pixel of a block, un-premultiplied.
type sample struct {
	rgb RGB
	a   uint8
}

// pool reduces a block to its most opaque pixel so particles smaller than a
// block still show up.
func pool(img *image.RGBA, rect image.Rectangle) sample {
	rect = rect.Intersect(img.Bounds())
	var best sample
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := img.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			a := img.Pix[off+3]
			if a > best.a {
				best = sample{
					rgb: RGB{
						R: unpremul(img.Pix[off], a),
						G: unpremul(img.Pix[off+1], a),
						B: unpremul(img.Pix[off+2], a),
					},
					a: a,
				}
			}
			off += 4
		}
	}
	return best
}

func unpremul(c, a uint8) uint8 {
	return uint8(min(255, int(c)*255/int(a)))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

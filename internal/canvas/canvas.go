// Package canvas is an in-memory 2D drawing surface with the small subset of
// the HTML canvas API the particle field draws with: fill style, paths built
// from arcs, fill and clearRect.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// maxArcStep bounds the chord length, in pixels, used to flatten arcs.
const maxArcStep = 0.75

type point struct{ x, y float32 }

type subpath struct {
	pts    []point
	closed bool
}

// bounds returns the pixels the subpath can touch.
func (sp subpath) bounds() image.Rectangle {
	minX, minY := sp.pts[0].x, sp.pts[0].y
	maxX, maxY := minX, minY
	for _, p := range sp.pts[1:] {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// Canvas is an RGBA pixel surface. The zero value is a 0x0 canvas.
type Canvas struct {
	img  *image.RGBA
	rast *vector.Rasterizer

	fill  color.NRGBA
	paths []subpath
}

// New returns a transparent canvas of the given size.
func New(width, height int) *Canvas {
	c := &Canvas{fill: color.NRGBA{R: 0, G: 0, B: 0, A: 255}}
	c.SetSize(width, height)
	return c
}

// Image exposes the pixel buffer. It is replaced by SetSize.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the pixel buffer; the new canvas is transparent.
func (c *Canvas) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if c.rast == nil {
		// Sized per Fill to the path's bounding box.
		c.rast = vector.NewRasterizer(0, 0)
	}
	c.paths = c.paths[:0]
}

// SetFillStyle sets the color used by Fill. See ParseColor for the accepted
// syntax.
func (c *Canvas) SetFillStyle(style string) {
	c.fill = ParseColor(style)
}

// FillStyle returns the current fill color.
func (c *Canvas) FillStyle() color.NRGBA { return c.fill }

// BeginPath discards the current path.
func (c *Canvas) BeginPath() {
	c.paths = c.paths[:0]
}

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() {
	if n := len(c.paths); n > 0 {
		c.paths[n-1].closed = true
	}
}

// Arc appends a circular arc centered at (x, y) to the current subpath,
// connecting it with a straight line to the previous point if there is one.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) {
	if radius < 0 || math.IsNaN(radius) {
		return
	}
	full := 2 * math.Pi
	sweep := endAngle - startAngle
	if counterClockwise {
		sweep = -sweep
	}
	if sweep >= full {
		sweep = full
	} else {
		sweep = math.Mod(sweep, full)
		if sweep < 0 {
			sweep += full
		}
	}
	if counterClockwise {
		sweep = -sweep
	}

	steps := int(math.Ceil(math.Abs(sweep) * radius / maxArcStep))
	steps = min(max(steps, 8), 256)

	n := len(c.paths)
	if n == 0 || c.paths[n-1].closed {
		c.paths = append(c.paths, subpath{})
		n++
	}
	sp := &c.paths[n-1]
	for i := 0; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		sp.pts = append(sp.pts, point{
			x: float32(x + radius*math.Cos(a)),
			y: float32(y + radius*math.Sin(a)),
		})
	}
}

// Fill paints the current path with the fill style, anti-aliased, using
// source-over compositing. Only the path's bounding box is rasterized.
func (c *Canvas) Fill() {
	if c.img == nil || len(c.paths) == 0 {
		return
	}
	canvas := c.img.Bounds()
	var box image.Rectangle
	for _, sp := range c.paths {
		if len(sp.pts) < 2 {
			continue
		}
		if b := sp.bounds(); b.Overlaps(canvas) {
			box = box.Union(b)
		}
	}
	box = box.Intersect(canvas)
	if box.Empty() {
		return
	}

	c.rast.Reset(box.Dx(), box.Dy())
	c.rast.DrawOp = draw.Over
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	for _, sp := range c.paths {
		if len(sp.pts) < 2 || !sp.bounds().Overlaps(canvas) {
			continue
		}
		c.rast.MoveTo(sp.pts[0].x-ox, sp.pts[0].y-oy)
		for _, p := range sp.pts[1:] {
			c.rast.LineTo(p.x-ox, p.y-oy)
		}
		c.rast.ClosePath()
	}
	c.rast.Draw(c.img, box, image.NewUniform(c.fill), image.Point{})
}

// ClearRect makes the given rectangle transparent.
func (c *Canvas) ClearRect(x, y, width, height float64) {
	if c.img == nil {
		return
	}
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+width)), int(math.Ceil(y+height)),
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

// At returns the non-premultiplied color of a pixel. Out-of-range pixels
// are transparent.
func (c *Canvas) At(x, y int) color.NRGBA {
	if c.img == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c.img.At(x, y)).(color.NRGBA)
}

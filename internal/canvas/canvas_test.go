package canvas

import (
	"fmt"
	"image/color"
	"math"
	"testing"
)

func fillCircle(c *Canvas, style string, x, y, r float64) {
	c.SetFillStyle(style)
	c.BeginPath()
	c.Arc(x, y, r, 0, 2*math.Pi, false)
	c.ClosePath()
	c.Fill()
}

func TestFillPaintsInsideCircleOnly(t *testing.T) {
	c := New(40, 40)
	fillCircle(c, "#300067", 20, 20, 6)

	center := c.At(20, 20)
	if center != (color.NRGBA{R: 0x30, G: 0, B: 0x67, A: 255}) {
		t.Fatalf("expected solid fill at center, got %+v", center)
	}
	for _, p := range [][2]int{{0, 0}, {39, 39}, {20, 30}, {30, 20}} {
		if a := c.At(p[0], p[1]).A; a != 0 {
			t.Fatalf("expected transparent pixel at %v, got alpha %d", p, a)
		}
	}
}

func TestFillAntiAliasesTinyParticles(t *testing.T) {
	c := New(10, 10)
	fillCircle(c, "#ffffff", 5, 5, 0.2)

	var total int
	for y := range 10 {
		for x := range 10 {
			total += int(c.At(x, y).A)
		}
	}
	if total == 0 {
		t.Fatal("expected sub-pixel particle to leave partial coverage")
	}
}

func TestClearRectMakesRegionTransparent(t *testing.T) {
	c := New(20, 20)
	fillCircle(c, "#ffffff", 10, 10, 9)

	c.ClearRect(0, 0, 10, 20)
	if a := c.At(5, 10).A; a != 0 {
		t.Fatalf("expected cleared pixel, got alpha %d", a)
	}
	if a := c.At(15, 10).A; a == 0 {
		t.Fatal("expected pixel outside cleared rect to survive")
	}
}

func TestFillIgnoresPathsOutsideCanvas(t *testing.T) {
	c := New(10, 10)
	fillCircle(c, "#ffffff", -50, -50, 3)
	fillCircle(c, "#ffffff", 500, 5, 3)
	for y := range 10 {
		for x := range 10 {
			if c.At(x, y).A != 0 {
				t.Fatalf("unexpected paint at (%d, %d)", x, y)
			}
		}
	}
}

func TestFillRasterizesOnlyPathBounds(t *testing.T) {
	for _, size := range [][2]int{{320, 160}, {1600, 800}} {
		c := New(size[0], size[1])
		fillCircle(c, "#ffffff", 100.5, 50.5, 1)

		if got := c.rast.Size(); got.X > 4 || got.Y > 4 {
			t.Fatalf("%dx%d canvas: rasterized %v for a 2px circle", size[0], size[1], got)
		}
	}
}

func TestFillLeavesPixelsOutsideBoundsUntouched(t *testing.T) {
	c := New(40, 40)
	pix := c.Image().Pix
	for i := range pix {
		pix[i] = 0x40
	}
	fillCircle(c, "#ffffff", 20, 20, 3)

	for y := range 40 {
		for x := range 40 {
			if x >= 17 && x < 23 && y >= 17 && y < 23 {
				continue
			}
			off := c.Image().PixOffset(x, y)
			for i := range 4 {
				if pix[off+i] != 0x40 {
					t.Fatalf("pixel (%d, %d) changed outside the circle's bounds", x, y)
				}
			}
		}
	}
	if c.At(20, 20) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected circle center painted, got %+v", c.At(20, 20))
	}
}

func TestFillClipsCircleAtCanvasEdge(t *testing.T) {
	c := New(10, 10)
	fillCircle(c, "#ffffff", 0, 5, 3)

	if a := c.At(0, 5).A; a != 255 {
		t.Fatalf("expected solid pixel at left edge, got alpha %d", a)
	}
	if a := c.At(5, 5).A; a != 0 {
		t.Fatalf("expected nothing past the circle, got alpha %d", a)
	}
}

func BenchmarkFillSmallCircle(b *testing.B) {
	for _, size := range [][2]int{{320, 160}, {1600, 800}} {
		b.Run(fmt.Sprintf("%dx%d", size[0], size[1]), func(b *testing.B) {
			c := New(size[0], size[1])
			for i := 0; i < b.N; i++ {
				fillCircle(c, "#300067", float64(i%size[0]), float64(i%size[1]), 1)
			}
		})
	}
}

func TestZeroSizeCanvasIsNoop(t *testing.T) {
	var c Canvas
	fillCircle(&c, "#ffffff", 0, 0, 5)
	c.ClearRect(0, 0, 10, 10)
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Fatalf("expected 0x0, got %dx%d", w, h)
	}

	c.SetSize(-3, 4)
	if w, h := c.Size(); w != 0 || h != 4 {
		t.Fatalf("expected negative width clamped, got %dx%d", w, h)
	}
	fillCircle(&c, "#ffffff", 0, 0, 5)
}

func TestBeginPathDropsPreviousArcs(t *testing.T) {
	c := New(30, 10)
	c.SetFillStyle("#ffffff")
	c.BeginPath()
	c.Arc(5, 5, 3, 0, 2*math.Pi, false)
	c.BeginPath()
	c.Arc(25, 5, 3, 0, 2*math.Pi, false)
	c.Fill()

	if c.At(5, 5).A != 0 {
		t.Fatal("expected first arc to be discarded")
	}
	if c.At(25, 5).A == 0 {
		t.Fatal("expected second arc to be filled")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#300067":              {R: 0x30, G: 0, B: 0x67, A: 255},
		"#FFF":                 {R: 255, G: 255, B: 255, A: 255},
		"rgba(61, 0, 103, 1)":  {R: 61, G: 0, B: 103, A: 255},
		"rgb(1,2,3)":           {R: 1, G: 2, B: 3, A: 255},
		"rgba(10, 20, 30, .5)": {R: 10, G: 20, B: 30, A: 128},
		"rgb(999, -4, 3)":      {R: 255, G: 0, B: 3, A: 255},
		"tomato":               fallbackColor,
		"#12345":               fallbackColor,
		"rgb(1, 2)":            fallbackColor,
	}
	for in, want := range cases {
		if got := ParseColor(in); got != want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
}

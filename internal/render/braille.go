package render

import "image"

// brailleThreshold is the minimum block coverage that lights a dot.
const brailleThreshold = 24

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// brailleCell lights one dot per covered 2x4 sub-block of the cell at
// (x0, y0) and colors the glyph with its most opaque pixel.
func (r *Renderer) brailleCell(img *image.RGBA, x0, y0 int) Cell {
	cw, ch := r.opts.CellWidth, r.opts.CellHeight
	dw, dh := max(cw/2, 1), max(ch/4, 1)

	var pattern uint
	var strongest sample
	for dx := range 2 {
		for dy := range 4 {
			bx, by := x0+dx*dw, y0+dy*dh
			s := pool(img, image.Rect(bx, by, bx+dw, by+dh))
			if s.a < brailleThreshold {
				continue
			}
			pattern |= 1 << brailleBits[dx][dy]
			if s.a > strongest.a {
				strongest = s
			}
		}
	}
	if pattern == 0 {
		return Cell{Rune: ' '}
	}
	return Cell{Rune: rune(0x2800 + pattern), Fg: strongest.rgb, HasFg: true}
}

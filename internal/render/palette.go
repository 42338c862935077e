package render

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// colorMode describes how colors are written to the terminal.
type colorMode uint8

const (
	colorOff     colorMode = iota // NO_COLOR or dumb terminal
	colorANSI16                   // basic 16-color
	colorANSI256                  // 256-color
	colorTrue                     // 24-bit truecolor
)

var (
	detectOnce sync.Once
	termColor  colorMode
	seqCache   sync.Map
)

// detectColorMode checks terminal capabilities once.
func detectColorMode() colorMode {
	detectOnce.Do(func() {
		termColor = colorModeFromEnv(os.LookupEnv)
	})
	return termColor
}

func colorModeFromEnv(lookup func(string) (string, bool)) colorMode {
	if _, ok := lookup("NO_COLOR"); ok {
		return colorOff
	}
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.ToLower(v)
	}
	term, ct := get("TERM"), get("COLORTERM")
	switch {
	case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
		return colorTrue
	case strings.Contains(term, "256color"):
		return colorANSI256
	case term == "dumb":
		return colorOff
	case term == "" && runtime.GOOS == "windows":
		return colorANSI16
	case term == "":
		return colorOff
	default:
		return colorANSI16
	}
}

// RGB is an opaque terminal color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

const ansiReset = "\x1b[0m"

// colorSeq returns the escape sequence selecting c as the foreground (bg
// false) or background color. It is empty when colors are off.
func colorSeq(mode colorMode, c RGB, bg bool) string {
	key := uint64(mode)<<32 | uint64(c.key())
	if bg {
		key |= 1 << 40
	}
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	layer := 38
	if bg {
		layer = 48
	}
	var seq string
	switch mode {
	case colorTrue:
		seq = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, c.R, c.G, c.B)
	case colorANSI256:
		ri := int(c.R) * 5 / 255
		gi := int(c.G) * 5 / 255
		bi := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[%d;5;%dm", layer, 16+36*ri+6*gi+bi)
	case colorANSI16:
		best := ansi16Nearest(c)
		base := 30
		if bg {
			base = 40
		}
		if best >= 8 {
			base += 60
			best -= 8
		}
		seq = fmt.Sprintf("\x1b[%dm", base+best)
	}

	seqCache.Store(key, seq)
	return seq
}

// ansi16Nearest returns the index of the closest ANSI 16 palette entry.
func ansi16Nearest(c RGB) int {
	best := 0
	bestDist := 1<<31 - 1
	for i, p := range ansi16Palette {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

var ansi16Palette = [16]RGB{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}

// ansiState skips redundant color escapes while a line is written.
type ansiState struct {
	mode   colorMode
	fg, bg uint32
}

const noColor = ^uint32(0)

func newANSIState(mode colorMode) ansiState {
	return ansiState{mode: mode, fg: noColor, bg: noColor}
}

func (s *ansiState) set(sb *strings.Builder, c Cell) {
	if s.mode == colorOff {
		return
	}
	if (!c.HasFg && s.fg != noColor) || (!c.HasBg && s.bg != noColor) {
		// A plain cell after a colored one needs the defaults back.
		s.reset(sb)
	}
	if c.HasFg && c.Fg.key() != s.fg {
		sb.WriteString(colorSeq(s.mode, c.Fg, false))
		s.fg = c.Fg.key()
	}
	if c.HasBg && c.Bg.key() != s.bg {
		sb.WriteString(colorSeq(s.mode, c.Bg, true))
		s.bg = c.Bg.key()
	}
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.mode == colorOff || (s.fg == noColor && s.bg == noColor) {
		return
	}
	sb.WriteString(ansiReset)
	s.fg, s.bg = noColor, noColor
}

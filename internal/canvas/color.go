package canvas

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var fallbackColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ParseColor understands "#rgb", "#rrggbb", "rgb(r, g, b)" and
// "rgba(r, g, b, a)" with a in [0, 1]. Anything else yields opaque white.
func ParseColor(s string) color.NRGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return fallbackColor
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return fallbackColor
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	var args string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[len("rgb(") : len(s)-1]
	default:
		return fallbackColor
	}

	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fallbackColor
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) {
			return fallbackColor
		}
		ch[i] = v
	}
	return color.NRGBA{
		R: channel(ch[0]),
		G: channel(ch[1]),
		B: channel(ch[2]),
		A: channel(ch[3] * 255),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

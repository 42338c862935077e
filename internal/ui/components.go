package ui

import (
	"fmt"
	"strings"
)

// renderNearBar draws the share of particles inside the pointer radius.
func renderNearBar(near, total, width int) string {
	if width < 4 {
		width = 4
	}

	var ratio float64
	if total > 0 {
		ratio = float64(near) / float64(total)
	}
	ratio = min(max(ratio, 0), 1)

	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func renderCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}

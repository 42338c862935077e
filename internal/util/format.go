package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a duration as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := total / 60 % 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatRate formats a per-second rate with one decimal, e.g. "59.8 fps".
func FormatRate(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		v = 0
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

// FormatPoint formats surface coordinates rounded to whole units.
func FormatPoint(x, y float64) string {
	return fmt.Sprintf("(%d, %d)", int(math.Round(x)), int(math.Round(y)))
}

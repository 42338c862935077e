package util

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// frameRing keeps the most recent frame timestamps.
type frameRing struct {
	buf []time.Time
	w   int // write position
	n   int // current fill level
}

func newFrameRing(size int) frameRing {
	return frameRing{buf: make([]time.Time, max(size, 2))}
}

// push records t, overwriting the oldest timestamp when full.
func (r *frameRing) push(t time.Time) {
	r.buf[r.w] = t
	r.w = (r.w + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

// rate returns frames per second across the buffered window.
func (r *frameRing) rate() float64 {
	if r.n < 2 {
		return 0
	}
	newest := r.buf[(r.w-1+len(r.buf))%len(r.buf)]
	oldest := r.buf[(r.w-r.n+len(r.buf))%len(r.buf)]
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(r.n-1) / span
}

func (r *frameRing) clear() {
	r.w, r.n = 0, 0
}

// RateMeter measures how often Observe is called and smooths the result
// with a critically damped spring so a displayed value does not flicker.
type RateMeter struct {
	ring   frameRing
	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewRateMeter sizes the window and the spring step for callers observing
// at about refreshRate times per second.
func NewRateMeter(refreshRate float64) *RateMeter {
	fps := max(int(refreshRate), 1)
	return &RateMeter{
		ring:   newFrameRing(fps),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Observe records one event at t.
func (m *RateMeter) Observe(t time.Time) {
	m.ring.push(t)
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.ring.rate())
}

// Value returns the smoothed events per second.
func (m *RateMeter) Value() float64 {
	return max(m.pos, 0)
}

// Reset drops the window but keeps the displayed value, so a pause does not
// count as one long frame.
func (m *RateMeter) Reset() {
	m.ring.clear()
}

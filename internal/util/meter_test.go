package util

import (
	"testing"
	"time"
)

func TestRateMeterTracksRate(t *testing.T) {
	m := NewRateMeter(60)
	start := time.Unix(0, 0)
	for i := range 300 {
		m.Observe(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	if v := m.Value(); v < 49 || v > 51 {
		t.Fatalf("expected ~50/s, got %v", v)
	}
}

func TestRateMeterResetKeepsValue(t *testing.T) {
	m := NewRateMeter(10)
	start := time.Unix(0, 0)
	for i := range 100 {
		m.Observe(start.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	before := m.Value()
	m.Reset()
	if m.Value() != before {
		t.Fatalf("expected value kept across reset, got %v want %v", m.Value(), before)
	}

	// A long gap after the reset must not read as one slow frame.
	m.Observe(start.Add(time.Hour))
	if m.Value() < before*0.5 {
		t.Fatalf("expected single sample after reset to leave value alone, got %v", m.Value())
	}
}

func TestFrameRingRate(t *testing.T) {
	r := newFrameRing(4)
	if r.rate() != 0 {
		t.Fatal("expected zero rate when empty")
	}
	start := time.Unix(0, 0)
	for i := range 10 {
		r.push(start.Add(time.Duration(i) * 250 * time.Millisecond))
	}
	if got := r.rate(); got != 4 {
		t.Fatalf("expected 4/s over the last window, got %v", got)
	}
}

// Package field lays particles out on a jittered grid and drives them from a
// host-provided repaint loop.
//
// A Field is not safe for concurrent use. Every method, including the frame
// callback it hands to its Host, must run on the host's event goroutine.
package field

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/drift/internal/particle"
	"github.com/olivier-w/drift/internal/vecmath"
	"golang.org/x/exp/rand"
)

// Gradient endpoints of the particle color: the red channel runs from
// colorRedBase at the top-left corner to colorRedBase+2*colorRedSpan at the
// bottom-right one.
const (
	colorRedBase = 48
	colorRedSpan = 25
	colorGreen   = 0
	colorBlue    = 103
)

// Proximity pairs a particle with its distance to the pointer.
type Proximity struct {
	Particle *particle.Particle
	Distance float64
}

// Stats counts what the frame loop has done so far.
type Stats struct {
	Ticks     uint64 // frames that ran Tick
	Throttled uint64 // frames skipped because FrameInterval had not elapsed
	Particles int
}

// Field owns the particle set, the pointer and the frame loop.
type Field struct {
	cfg     Config
	surface Surface
	host    Host
	rng     vecmath.Rand
	log     *log.Logger

	particles []*particle.Particle
	near      []Proximity

	pointer    vecmath.Vector2
	hasPointer bool

	frame     FrameID
	lastFrame time.Time
	ticked    bool
	stats     Stats
}

// Option customizes a Field.
type Option func(*Field)

// WithRand sets the random source for layout jitter, particle settings and
// steering.
func WithRand(rng vecmath.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithLogger sets the logger for lifecycle messages. Logs are discarded by
// default.
func WithLogger(l *log.Logger) Option {
	return func(f *Field) { f.log = l }
}

// New validates cfg and binds a field to surface and host. The field stays
// idle until Initialize is called.
func New(surface Surface, host Host, cfg Config, opts ...Option) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		cfg:     cfg,
		surface: surface,
		host:    host,
		log:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return f, nil
}

// Config returns the field's configuration.
func (f *Field) Config() Config { return f.cfg }

// Initialize tears down the running loop, resizes the surface to the
// viewport, rebuilds the particle grid and starts the loop again. It is safe
// to call repeatedly.
func (f *Field) Initialize() error {
	f.Stop()
	f.clear()

	w, h := f.host.Viewport()
	f.surface.SetSize(max(w, 0), max(h, 0))

	if err := f.LayoutParticles(); err != nil {
		return err
	}

	f.Start()
	f.host.Listen(f.HandleEvent)

	w, h = f.surface.Size()
	f.log.Printf("field: initialized %dx%d with %d particles", w, h, len(f.particles))
	return nil
}

// LayoutParticles replaces the particle set with a grid of particles, one
// per spacing cell, each jittered up to one spacing off its grid point.
func (f *Field) LayoutParticles() error {
	w, h := f.surface.Size()
	width, height := float64(w), float64(h)
	spacing := f.cfg.Spacing

	cols := int(math.Floor(width / spacing))
	rows := int(math.Floor(height / spacing))
	colGutter := (spacing + (width - float64(cols)*spacing)) / 2
	rowGutter := (spacing + (height - float64(rows)*spacing)) / 2

	f.particles = make([]*particle.Particle, 0, max(cols*rows, 0))
	f.near = f.near[:0]

	for row := range rows {
		for col := range cols {
			x := float64(col)*spacing + colGutter + spacing*f.rng.Float64()*vecmath.RandomSign(f.rng)
			y := float64(row)*spacing + rowGutter + spacing*f.rng.Float64()*vecmath.RandomSign(f.rng)

			settings, direction := f.cfg.Particle.Sample(f.rng, gradientColor(x, y, width, height))
			p, err := particle.New(vecmath.Vec(x, y), direction, settings)
			if err != nil {
				return fmt.Errorf("layout particle (%d, %d): %w", col, row, err)
			}
			f.particles = append(f.particles, p)
		}
	}
	f.stats.Particles = len(f.particles)
	return nil
}

// gradientColor shades the red channel from one corner of the surface to
// the other.
func gradientColor(x, y, width, height float64) string {
	r := math.Round(colorRedBase + x/width*colorRedSpan + y/height*colorRedSpan)
	r = math.Max(0, math.Min(255, r))
	return colorful.Color{R: r / 255, G: colorGreen / 255.0, B: colorBlue / 255.0}.Hex()
}

// SetPointer records the latest pointer position in surface coordinates.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = vecmath.Vec(x, y)
	f.hasPointer = true
}

// Pointer returns the last pointer position, if any interaction happened.
func (f *Field) Pointer() (vecmath.Vector2, bool) {
	return f.pointer, f.hasPointer
}

// Tick runs one animation frame: clear, then update and draw every particle
// in order, then collect the particles near the pointer.
func (f *Field) Tick() {
	f.clear()
	for _, p := range f.particles {
		p.Update(f.rng)
		p.Render(f.surface)
	}
	f.collectNear()
}

// Redraw clears the surface and draws every particle where it is, without
// advancing the simulation.
func (f *Field) Redraw() {
	f.clear()
	for _, p := range f.particles {
		p.Render(f.surface)
	}
}

// collectNear gathers the particles within PointerRadius of the pointer.
// Nothing is drawn from it yet; it is the input for connecting lines.
func (f *Field) collectNear() {
	f.near = f.near[:0]
	if !f.hasPointer {
		return
	}
	for _, p := range f.particles {
		d := vecmath.Distance(p.Current, f.pointer)
		if d < f.cfg.PointerRadius {
			f.near = append(f.near, Proximity{Particle: p, Distance: d})
		}
	}
}

// Near returns the pointer-proximity set computed by the last Tick. The
// slice is reused by the next Tick.
func (f *Field) Near() []Proximity { return f.near }

// Particles returns the particles in draw order.
func (f *Field) Particles() []*particle.Particle { return f.particles }

// Stats returns frame loop counters.
func (f *Field) Stats() Stats { return f.stats }

// Running reports whether a frame callback is pending.
func (f *Field) Running() bool { return f.frame != 0 }

// Start schedules the frame loop unless it is already scheduled.
func (f *Field) Start() {
	if f.frame != 0 {
		return
	}
	f.frame = f.host.RequestFrame(f.animate)
}

// Stop cancels the pending frame callback, if any.
func (f *Field) Stop() {
	if f.frame == 0 {
		return
	}
	f.host.CancelFrame(f.frame)
	f.frame = 0
}

// animate is the self-rescheduling frame callback. It runs Tick at most once
// per FrameInterval regardless of how often the host repaints.
func (f *Field) animate() {
	f.frame = 0

	now := f.host.Now()
	if !f.ticked || now.Sub(f.lastFrame) >= f.cfg.FrameInterval() {
		f.lastFrame = now
		f.ticked = true
		f.stats.Ticks++
		f.Tick()
	} else {
		f.stats.Throttled++
	}

	f.frame = f.host.RequestFrame(f.animate)
}

func (f *Field) clear() {
	w, h := f.surface.Size()
	f.surface.ClearRect(0, 0, float64(w), float64(h))
}

// HandleEvent translates an input event into a field call. Pointer and touch
// events ask the host to suppress its default handling (scrolling).
func (f *Field) HandleEvent(ev Event) bool {
	switch ev.Kind {
	case PointerMove, TouchStart, TouchMove:
		f.SetPointer(ev.X, ev.Y)
		return true
	case Resize:
		if err := f.Initialize(); err != nil {
			f.log.Printf("field: reinitialize on resize: %v", err)
		}
		return false
	}
	return false
}

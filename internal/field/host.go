package field

import (
	"time"

	"github.com/olivier-w/drift/internal/particle"
)

// FrameID identifies a scheduled frame callback. The zero value means no
// frame is scheduled.
type FrameID uint64

// Host is the environment a Field runs in: a repaint scheduler, a clock,
// the viewport size and the input source.
type Host interface {
	// RequestFrame schedules cb to run once before the next repaint.
	RequestFrame(cb func()) FrameID
	// CancelFrame drops a pending callback. Unknown or already fired ids
	// are ignored.
	CancelFrame(id FrameID)
	Now() time.Time
	Viewport() (width, height int)
	// Listen installs the input listener, replacing any previous one.
	Listen(l Listener)
}

// Surface is the 2D drawing target of a Field.
type Surface interface {
	particle.Context
	ClearRect(x, y, width, height float64)
	Size() (width, height int)
	SetSize(width, height int)
}

// EventKind enumerates the input events a Field reacts to.
type EventKind uint8

const (
	PointerMove EventKind = iota
	TouchStart
	TouchMove
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is an input notification in surface coordinates. X and Y are unused
// for Resize.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Listener receives input events. It reports whether the host should
// suppress its default handling of the event.
type Listener func(Event) (preventDefault bool)

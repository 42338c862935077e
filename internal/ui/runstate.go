package ui

// RunState is whether the frame loop is advancing.
type RunState int

const (
	Running RunState = iota
	Paused
)

// Toggle flips between running and paused.
func (s RunState) Toggle() RunState {
	switch s {
	case Running:
		return Paused
	default:
		return Running
	}
}

func (s RunState) String() string {
	switch s {
	case Paused:
		return "paused"
	default:
		return "running"
	}
}

// Icon returns the HUD marker for the state.
func (s RunState) Icon() string {
	switch s {
	case Paused:
		return "❚❚"
	default:
		return "▶"
	}
}

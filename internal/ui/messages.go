package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/drift/internal/field"
)

// frameMsg fires a scheduled frame. Its id is matched against the pending
// frame so that cancelled or superseded ticks are dropped.
type frameMsg struct {
	id field.FrameID
	at time.Time
}

func frameCmd(id field.FrameID, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg{id: id, at: t}
	})
}

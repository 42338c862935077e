package termhost

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/olivier-w/drift/internal/config"
	"github.com/olivier-w/drift/internal/field"
)

// Run opens the terminal, drives the field until the user quits and restores
// the terminal afterwards.
func Run(ctx context.Context, cfg config.Config, opts ...field.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	h, err := New(screen, cfg, opts...)
	if err != nil {
		return err
	}
	return h.Loop(ctx)
}

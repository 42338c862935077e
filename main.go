package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/drift/internal/config"
	"github.com/olivier-w/drift/internal/field"
	"github.com/olivier-w/drift/internal/termhost"
	"github.com/olivier-w/drift/internal/ui"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Log to a file when DRIFT_DEBUG names one; the terminal belongs to the UI.
	var opts []field.Option
	if path := os.Getenv("DRIFT_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "drift")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		opts = append(opts, field.WithLogger(log.Default()))
	} else {
		log.SetOutput(io.Discard)
	}
	if cfg.Display.Seed != 0 {
		opts = append(opts, field.WithRand(rand.New(rand.NewSource(uint64(cfg.Display.Seed)))))
	}

	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, opts []field.Option) error {
	log.Printf("starting %s backend, %s mode", cfg.Display.Backend, cfg.Display.Mode)
	switch cfg.Display.Backend {
	case config.BackendTcell:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err := termhost.Run(ctx, cfg, opts...)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return ui.Run(cfg, opts...)
	}
}

// parseArgs loads the config file named by -config and applies the flags
// the user set on top of it. Usage output goes to usage.
func parseArgs(args []string, usage io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("drift", flag.ContinueOnError)
	fs.SetOutput(usage)

	def := config.Default()
	path := fs.String("config", "", "path to a TOML config file")
	backend := fs.String("backend", def.Display.Backend, "terminal backend: tea or tcell")
	mode := fs.String("mode", def.Display.Mode, "render mode: halfblock, braille or ascii")
	seed := fs.Int64("seed", 0, "random seed (0 seeds from the clock)")
	spacing := fs.Float64("spacing", def.Field.Spacing, "grid spacing in surface pixels")
	radius := fs.Float64("pointer-radius", def.Field.PointerRadius, "pointer proximity radius")
	interval := fs.Float64("interval", def.Field.FrameIntervalMS, "minimum milliseconds between ticks")
	fps := fs.Float64("fps", def.Display.RefreshRate, "repaint rate")
	background := fs.String("background", def.Display.Background, "background color as #rrggbb")
	noHUD := fs.Bool("no-hud", false, "hide the status and help lines")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Display.Backend = *backend
		case "mode":
			cfg.Display.Mode = *mode
		case "seed":
			cfg.Display.Seed = *seed
		case "spacing":
			cfg.Field.Spacing = *spacing
		case "pointer-radius":
			cfg.Field.PointerRadius = *radius
		case "interval":
			cfg.Field.FrameIntervalMS = *interval
		case "fps":
			cfg.Display.RefreshRate = *fps
		case "background":
			cfg.Display.Background = *background
		case "no-hud":
			cfg.Display.HUD = !*noHUD
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

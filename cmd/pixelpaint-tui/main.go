// Command pixelpaint-tui runs the editor in a terminal. Every terminal
// cell is one grid cell of the canvas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"pixelpaint/internal/canvas"
	"pixelpaint/internal/config"
	"pixelpaint/internal/editor"
	"pixelpaint/internal/logger"
	"pixelpaint/internal/tui"
)

// defaults sized for an 80x24 terminal at the default cell size.
func defaults() config.Config {
	c := config.Default()
	c.Width, c.Height = 320, 200
	c.LogFile = "pixelpaint.log"
	return c
}

func main() {
	cfg, err := config.ParseWith(defaults(), os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The screen owns the tty, so logs always go to a file.
	log, err := logger.New(cfg.Verbose, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(logger.NewContext(ctx, log), cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("exit", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.L(ctx)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	doc := canvas.New(cfg.Width, cfg.Height, cfg.CellSize)
	ctrl := editor.New(doc, log, editor.Options{
		ExportScale: cfg.ExportScale,
		FrameDelay:  cfg.FrameDelay,
	})
	log.Info("start",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("cell", cfg.CellSize))
	return tui.New(screen, ctrl, log).Run(ctx)
}

// Command pixelpaint is the windowed grid painting editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"pixelpaint/internal/canvas"
	"pixelpaint/internal/config"
	"pixelpaint/internal/editor"
	"pixelpaint/internal/logger"
	"pixelpaint/internal/ui"
)

const WindowTitle = "Pixel Painting"

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var paths []string
	if cfg.LogFile != "" {
		paths = append(paths, cfg.LogFile)
	}
	log, err := logger.New(cfg.Verbose, paths...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(logger.NewContext(context.Background(), log), cfg); err != nil {
		log.Error("exit", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.L(ctx)

	// 1. Document and controller
	doc := canvas.New(cfg.Width, cfg.Height, cfg.CellSize)
	ctrl := editor.New(doc, log, editor.Options{
		ExportScale: cfg.ExportScale,
		FrameDelay:  cfg.FrameDelay,
	})
	game := ui.NewGame(ctrl, log)

	// 2. Window Setup
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	log.Info("start",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("cell", cfg.CellSize))

	// 3. Run Loop
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
